// Package collab defines the external-collaborator contracts the core
// consumes but never implements (spec.md §6): a monotonic clock, an
// absolute-interval scheduler, an injected RNG, a per-character text sink,
// and id-based resolvers for races/jobs/abilities/effects/templates. The
// core only ever holds these as interfaces; concrete implementations
// (a real wall clock, a seeded PRNG, a YAML-backed resolver) live outside
// the core packages — see internal/worlddata and cmd/mudsim.
package collab

import "github.com/brackenmoor/mudcore/internal/object"

// Clock provides monotonic milliseconds. The core never calls time.Now
// directly so that tests can drive it with a fake clock.
type Clock interface {
	NowMs() int64
}

// TimerHandle is an opaque handle returned by Scheduler.SetAbsoluteInterval,
// passed back to ClearInterval to cancel.
type TimerHandle any

// Scheduler exposes absolute-interval timers. periodMs is the interval
// between callback invocations; the scheduler is responsible for delivering
// callbacks on the single world-tick execution domain (spec.md §5) — the
// core never assumes anything about which goroutine calls it, only that
// calls are serialized.
type Scheduler interface {
	SetAbsoluteInterval(callback func(nowMs int64), periodMs int64) TimerHandle
	ClearInterval(h TimerHandle)
}

// RNG is an injected random source (spec.md §5: "random number generation
// ... is injected by the caller, so the simulation is deterministic given
// identical inputs and a seeded RNG").
type RNG interface {
	Intn(n int) int
}

// MessageGroup categorizes a piece of outgoing text for the external
// renderer (spec.md §7: "the core chooses the category; the external layer
// chooses rendering").
type MessageGroup int

const (
	MessageInfo MessageGroup = iota
	MessageSystem
	MessageCombat
)

// Sink is the per-character text channel (spec.md §1: "a Send(text, group)
// sink per character"). A mob with no sink (an NPC with no owning
// connection) simply has a nil Sink field; sends to it are no-ops.
type Sink interface {
	Send(text string, group MessageGroup)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(text string, group MessageGroup)

// Send implements Sink.
func (f SinkFunc) Send(text string, group MessageGroup) { f(text, group) }

// Factory creates a live Node from a Template, optionally with a caller-
// supplied oid (used by deserialization, which already knows the oid on
// disk; zero means "mint a new one"). Owned by the package layer per
// spec.md §6.
type Factory interface {
	CreateFromTemplate(tmpl *object.Template, oid int64) object.Node
}

// Race is the resolved shape of a race archetype: starting primaries, a
// per-level growth rate, and the abilities it grants at each level
// (spec.md §4.4 "Archetype abilities").
type Race struct {
	ID          string
	Start       Primary
	Growth      Primary
	Abilities   []AbilityGrant
	GrowthCurve func(level int32) float64 // growth modifier polynomial, spec.md §4.4
}

// Job mirrors Race for the job half of a mob's archetype.
type Job struct {
	ID          string
	Start       Primary
	Growth      Primary
	Abilities   []AbilityGrant
	GrowthCurve func(level int32) float64
}

// Primary is a local alias kept distinct from attr.Primary so collab has no
// dependency on the attr package; mob converts between the two.
type Primary struct {
	Strength, Agility, Intelligence float64
}

// AbilityGrant is a {abilityID, level} archetype ability entry.
type AbilityGrant struct {
	AbilityID string
	Level     int32
}

// Ability is the resolved shape of a learnable ability: its proficiency
// curve (use count -> percent 0..100).
type Ability struct {
	ID           string
	DisplayName  string
	Proficiency  func(useCount int32) int32
}

// EffectKind distinguishes the tagged effect-template union (spec.md §4.6).
type EffectKind int

const (
	EffectPassive EffectKind = iota
	EffectDoT
	EffectHoT
	EffectShield
)

// EffectTemplate is the resolved, immutable shape of an effect definition.
type EffectTemplate struct {
	ID         string
	Kind       EffectKind
	Stackable  bool
	OnApply    string
	OnExpire   string

	// Archetype marks a passive granted directly by a mob's race or job
	// (spec.md §4.6 "Serialization": "Passive archetype effects ... are
	// not serialized — they are re-applied on load").
	Archetype bool

	// Passive
	PrimaryMod   Primary
	SecondaryMod map[string]int32
	ResourceMod  map[string]int32
	DurationSec  float64 // 0 == permanent, passive only

	// DoT / HoT
	Amount      int32 // damage or heal per tick
	IntervalSec float64
	Duration    float64
	IsOffensive bool // DoT only

	// Shield
	Absorption          int32
	AbsorptionRate       float64 // default 1.0 when zero
	MaxAbsorptionPerHit  int32   // 0 == unbounded
	DamageTypeFilter     string  // "" == no filter
}

// Resolvers bundles the id-based lookups spec.md §6 lists individually.
// Grouped into one interface because every caller that needs one of these
// needs all four (mob leveling, effect application, reset spawning).
type Resolvers interface {
	ResolveRace(id string) (*Race, error)
	ResolveJob(id string) (*Job, error)
	ResolveAbility(id string) (*Ability, error)
	ResolveEffect(id string) (*EffectTemplate, error)
}
