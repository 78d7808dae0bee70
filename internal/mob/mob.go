// Package mob implements mob state (spec.md C6): equipment slots,
// attribute-bonus recomputation, experience/leveling, learned-ability
// proficiency, and the behavior-flag set a mob carries. It embeds
// world.Movable to get containment, weight, and Step for free — the
// same extends-by-embedding layering the teacher uses for
// Character -> Player/Npc (internal/model/character.go).
package mob

import (
	"math"

	"github.com/brackenmoor/mudcore/internal/attr"
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/world"
)

// ExperienceThreshold is the XP cost of a single level (spec.md §4.4).
const ExperienceThreshold = 100

// Behavior is a bitmask of the behavior flags a mob can carry (spec.md
// §4.5: aggressive/wimpy/wander/shopkeeper).
type Behavior uint8

const (
	Aggressive Behavior = 1 << iota
	Wimpy
	Wander
	Shopkeeper
)

// Has reports whether b includes flag.
func (b Behavior) Has(flag Behavior) bool { return b&flag != 0 }

// CharacterRef is the optional back-reference to a player-session object
// (spec.md §3 invariant 4: "mob.character?.mob === mob whenever either
// side is set"). The concrete character/session type lives entirely
// outside this module's core (transport layer, out of scope); the core
// only needs to know whether one is attached, via this minimal interface.
type CharacterRef interface {
	BoundMob() *Mob
}

// AbilityState tracks a learned ability's use count and cached
// proficiency percent (spec.md §4.4).
type AbilityState struct {
	Ability  *collab.Ability
	UseCount int32
}

// ThreatEntry is one row of a Mob's threat table (spec.md §4.5).
type ThreatEntry struct {
	Attacker      *Mob
	Hate          int64
	ShouldExpire  bool
}

// Mob is any living inhabitant of the world — player character or NPC
// (spec.md GLOSSARY).
type Mob struct {
	*world.Movable

	RaceID string
	JobID  string
	Level  int32

	experience int32

	runtimeAttributeBonus attr.Primary
	runtimeResourceBonus  attr.Caps
	runtimeSecondaryBonus attr.Secondary

	primary   attr.Primary
	secondary attr.Secondary
	caps      attr.Caps

	health     int32
	mana       int32
	exhaustion int32

	equipped map[string]Equippable
	learned  map[string]*AbilityState
	proficiencySnapshot map[string]int32

	effects []Effect

	character CharacterRef
	sink      collab.Sink

	combatTarget *Mob
	threat       map[int64]*ThreatEntry
	threatTimer  collab.TimerHandle
	threatStop   func()

	behaviors Behavior
	factionID string
	spawnRoomRef string

	aiScript string

	resolvers collab.Resolvers
}

// Effect is the minimal shape mob needs from internal/effects' active
// instances to fold their modifiers into recomputation, without mob
// importing effects (effects imports mob to reach Mob's resource fields
// and AddEffect/RemoveEffect call sites — the reverse import would cycle).
type Effect interface {
	PrimaryModifier() attr.Primary
	SecondaryModifier() attr.Secondary
	ResourceModifier() attr.Caps
	IsPassive() bool
}

// New constructs a detached, bootstrapping Mob. Recompute must be called
// once archetype data is available to populate resource caps.
func New(oid int64, keywords, display string, weight float64, raceID, jobID string, level int32, resolvers collab.Resolvers) *Mob {
	return &Mob{
		Movable:   world.NewMovable(oid, keywords, display, weight),
		RaceID:    raceID,
		JobID:     jobID,
		Level:     level,
		equipped:  map[string]Equippable{},
		learned:   map[string]*AbilityState{},
		proficiencySnapshot: map[string]int32{},
		threat:    map[int64]*ThreatEntry{},
		resolvers: resolvers,
	}
}

// CanAttemptStep implements world.StepGate: shopkeepers can never move
// (spec.md §4.3, §4.5).
func (m *Mob) CanAttemptStep() bool { return !m.behaviors.Has(Shopkeeper) }

// Notify implements world.Messenger: forwards to the attached sink, or
// silently drops the message when the mob has none (spec.md §1: "a mob
// with no sink ... sends to it are no-ops").
func (m *Mob) Notify(text string, group collab.MessageGroup) {
	if m.sink != nil {
		m.sink.Send(text, group)
	}
}

// SetSink attaches or clears the per-character text sink.
func (m *Mob) SetSink(s collab.Sink) { m.sink = s }

// Character returns the bound character-session back-reference, if any.
func (m *Mob) Character() CharacterRef { return m.character }

// SetCharacter sets the bidirectional character<->mob back-reference
// (spec.md §3 invariant 4). The caller is responsible for also setting
// the character-side BoundMob link; this method only sets this side.
func (m *Mob) SetCharacter(c CharacterRef) { m.character = c }

// IsPlayerControlled reports whether a character is currently bound.
func (m *Mob) IsPlayerControlled() bool { return m.character != nil }

// Behaviors returns the mob's behavior flag set.
func (m *Mob) Behaviors() Behavior { return m.behaviors }

// SetBehaviors replaces the behavior flag set.
func (m *Mob) SetBehaviors(b Behavior) { m.behaviors = b }

// Health, Mana, Exhaustion return the current clamped resource values.
func (m *Mob) Health() int32     { return m.health }
func (m *Mob) Mana() int32       { return m.mana }
func (m *Mob) Exhaustion() int32 { return m.exhaustion }
func (m *Mob) MaxHealth() int32  { return m.caps.MaxHealth }
func (m *Mob) MaxMana() int32    { return m.caps.MaxMana }

// SetExhaustion clamps and sets exhaustion (spec.md §3 invariant 8).
func (m *Mob) SetExhaustion(v int32) { m.exhaustion = attr.Clamp(v, 0, 100) }

// ReduceHealth subtracts amount from health, clamped at 0 (spec.md §3
// invariant 8). Used by the damage pipeline in internal/combat.
func (m *Mob) ReduceHealth(amount int32) {
	m.health = attr.Clamp(m.health-amount, 0, m.caps.MaxHealth)
}

// Heal adds amount to health, clamped at MaxHealth.
func (m *Mob) Heal(amount int32) {
	m.health = attr.Clamp(m.health+amount, 0, m.caps.MaxHealth)
}

// RestoreMana adds amount to mana, clamped at MaxMana.
func (m *Mob) RestoreMana(amount int32) {
	m.mana = attr.Clamp(m.mana+amount, 0, m.caps.MaxMana)
}

// Primary, Secondary, Caps expose the currently-derived attribute sets.
func (m *Mob) Primary() attr.Primary     { return m.primary }
func (m *Mob) Secondary() attr.Secondary { return m.secondary }
func (m *Mob) Caps() attr.Caps           { return m.caps }

// AddRuntimeAttributeBonus accumulates a one-off bonus (e.g. a GM command
// or quest reward) folded into recomputation step 3 (spec.md §4.4).
func (m *Mob) AddRuntimeAttributeBonus(p attr.Primary) {
	m.runtimeAttributeBonus = attr.SumPrimary(m.runtimeAttributeBonus, p)
}

// AddRuntimeResourceBonus accumulates a one-off resource-cap bonus folded
// into recomputation step 5.
func (m *Mob) AddRuntimeResourceBonus(c attr.Caps) {
	m.runtimeResourceBonus = attr.SumCaps(m.runtimeResourceBonus, c)
}

// RuntimeAttributeBonus and RuntimeResourceBonus expose the accumulated
// runtime bonuses, primarily for serialization.
func (m *Mob) RuntimeAttributeBonus() attr.Primary { return m.runtimeAttributeBonus }
func (m *Mob) RuntimeResourceBonus() attr.Caps     { return m.runtimeResourceBonus }

// RestoreExperience replays a serialized in-level XP accumulation without
// triggering growth-modifier math or level-up checks.
func (m *Mob) RestoreExperience(xp int32) { m.experience = xp }

// RestoreResources replays serialized current resource values, clamped
// against the caps the preceding Recompute derived (spec.md §3 invariant 8
// must hold even against a tampered or stale save).
func (m *Mob) RestoreResources(health, mana, exhaustion int32) {
	m.health = attr.Clamp(health, 0, m.caps.MaxHealth)
	m.mana = attr.Clamp(mana, 0, m.caps.MaxMana)
	m.exhaustion = attr.Clamp(exhaustion, 0, 100)
}

// RestoreLearnedAbility replays a serialized learned-ability entry at its
// saved use count, refreshing the proficiency snapshot.
func (m *Mob) RestoreLearnedAbility(a *collab.Ability, uses int32) {
	m.learned[a.ID] = &AbilityState{Ability: a, UseCount: uses}
	m.refreshProficiency(a.ID)
}

// RecomputePreservingRatios resolves the mob's own race/job through its
// resolvers and re-derives attributes, preserving the current health/mana
// fraction rather than bootstrapping to full (spec.md §4.6 "recompute
// derived attributes (preserving HP/MP ratios)" after a passive effect
// applies or expires). A mob with no resolvers (e.g. a test double) simply
// recomputes with zero race/job contributions.
func (m *Mob) RecomputePreservingRatios() {
	var race *collab.Race
	var job *collab.Job
	if m.resolvers != nil {
		if r, err := m.resolvers.ResolveRace(m.RaceID); err == nil {
			race = r
		}
		if j, err := m.resolvers.ResolveJob(m.JobID); err == nil {
			job = j
		}
	}
	m.Recompute(race, job, false, m.HealthRatio(), m.ManaRatio())
}

// Recompute runs the full derivation pipeline (spec.md §4.4 steps 1-6).
// bootstrap resets resources to max; otherwise ratio, if non-negative,
// re-applies the prior health/mana fraction against the new caps, else
// current values are simply re-clamped.
func (m *Mob) Recompute(race *collab.Race, job *collab.Job, bootstrap bool, healthRatio, manaRatio float64) {
	equipPrimary, equipSecondary, equipResource, armorDefense := m.walkEquipment()
	effectPrimary, effectSecondary, effectResource := m.walkPassiveEffects()

	growthLevels := float64(m.Level - 1)
	if growthLevels < 0 {
		growthLevels = 0
	}

	raceStart, raceGrowth := collab.Primary{}, collab.Primary{}
	jobStart, jobGrowth := collab.Primary{}, collab.Primary{}
	if race != nil {
		raceStart, raceGrowth = race.Start, race.Growth
	}
	if job != nil {
		jobStart, jobGrowth = job.Start, job.Growth
	}

	primary := attr.SumPrimary(
		toAttrPrimary(raceStart),
		toAttrPrimary(jobStart),
		attr.MultiplyPrimary(toAttrPrimary(raceGrowth), growthLevels),
		attr.MultiplyPrimary(toAttrPrimary(jobGrowth), growthLevels),
		m.runtimeAttributeBonus,
		equipPrimary,
		effectPrimary,
	)
	m.primary = primary

	secondary := attr.SumSecondary(attr.ComputeSecondary(primary), equipSecondary, effectSecondary)
	secondary.Defense += armorDefense
	m.secondary = secondary

	derivedCaps := attr.ComputeCaps(secondary.Vitality, secondary.Wisdom)
	caps := attr.SumCaps(derivedCaps, m.runtimeResourceBonus, equipResource, effectResource)
	m.caps = caps

	switch {
	case bootstrap:
		m.health = caps.MaxHealth
		m.mana = caps.MaxMana
		m.exhaustion = 0
	default:
		if healthRatio >= 0 {
			m.health = attr.Clamp(int32(math.Round(healthRatio*float64(caps.MaxHealth))), 0, caps.MaxHealth)
		} else {
			m.health = attr.Clamp(m.health, 0, caps.MaxHealth)
		}
		if manaRatio >= 0 {
			m.mana = attr.Clamp(int32(math.Round(manaRatio*float64(caps.MaxMana))), 0, caps.MaxMana)
		} else {
			m.mana = attr.Clamp(m.mana, 0, caps.MaxMana)
		}
	}
}

// HealthRatio and ManaRatio are convenience helpers for callers that want
// to preserve a ratio across a Recompute call (spec.md §4.4 step 6).
func (m *Mob) HealthRatio() float64 {
	if m.caps.MaxHealth == 0 {
		return 0
	}
	return float64(m.health) / float64(m.caps.MaxHealth)
}

func (m *Mob) ManaRatio() float64 {
	if m.caps.MaxMana == 0 {
		return 0
	}
	return float64(m.mana) / float64(m.caps.MaxMana)
}

func (m *Mob) walkEquipment() (attr.Primary, attr.Secondary, attr.Caps, int32) {
	var armorDefense int32
	secondaries := make([]attr.Secondary, 0, len(m.equipped))
	primaries := make([]attr.Primary, 0, len(m.equipped))
	resources := make([]attr.Caps, 0, len(m.equipped))
	for _, eq := range m.equipped {
		primaries = append(primaries, eq.AttributeBonuses())
		secondaries = append(secondaries, eq.SecondaryBonuses())
		resources = append(resources, eq.ResourceBonuses())
		if armor, ok := eq.(*object.Armor); ok {
			armorDefense += armor.Defense
		}
		// Weapon attack power never folds into base attack power here —
		// weapons contribute only when used in an attack (spec.md §4.4
		// step 1).
	}
	return attr.SumPrimary(primaries...), attr.SumSecondary(secondaries...), attr.SumCaps(resources...), armorDefense
}

// Equippable is anything that can occupy a mob's equipment slot map: a
// bare Equipment, an Armor, or a Weapon, each promoting these accessors
// from their embedded *Equipment.
type Equippable interface {
	object.Node
	EquipSlot() string
	AttributeBonuses() attr.Primary
	ResourceBonuses() attr.Caps
	SecondaryBonuses() attr.Secondary
}

func (m *Mob) walkPassiveEffects() (attr.Primary, attr.Secondary, attr.Caps) {
	var primaries []attr.Primary
	var secondaries []attr.Secondary
	var resources []attr.Caps
	for _, e := range m.effects {
		if !e.IsPassive() {
			continue
		}
		primaries = append(primaries, e.PrimaryModifier())
		secondaries = append(secondaries, e.SecondaryModifier())
		resources = append(resources, e.ResourceModifier())
	}
	return attr.SumPrimary(primaries...), attr.SumSecondary(secondaries...), attr.SumCaps(resources...)
}

func toAttrPrimary(p collab.Primary) attr.Primary {
	return attr.Primary{Strength: p.Strength, Agility: p.Agility, Intelligence: p.Intelligence}
}

// AddEffectInstance inserts e into the active-effect set used by
// recomputation; internal/effects.AddEffect calls this. Neither adds the
// mob to any effects registry.
func (m *Mob) AddEffectInstance(e Effect) { m.effects = append(m.effects, e) }

// RemoveEffectInstance removes e from the active-effect set.
func (m *Mob) RemoveEffectInstance(e Effect) {
	for i, existing := range m.effects {
		if existing == e {
			m.effects = append(m.effects[:i], m.effects[i+1:]...)
			return
		}
	}
}

// ActiveEffects returns a snapshot of the active-effect set.
func (m *Mob) ActiveEffects() []Effect {
	out := make([]Effect, len(m.effects))
	copy(out, m.effects)
	return out
}

// CombatTarget returns the mob's current combat target, if any.
func (m *Mob) CombatTarget() *Mob { return m.combatTarget }

// SetCombatTargetRaw assigns the combat-target field without any of the
// combat-queue/threat-table side effects spec.md §4.5 requires; it is the
// low-level primitive internal/combat's setter builds on.
func (m *Mob) SetCombatTargetRaw(t *Mob) { m.combatTarget = t }

// ThreatTable returns the live (mutable) threat map, keyed by attacker
// oid. Only non-player-controlled mobs are expected to have entries
// (spec.md §3 invariant 10); internal/combat owns all table mutation
// logic (decay, switching), using this as its storage.
func (m *Mob) ThreatTable() map[int64]*ThreatEntry { return m.threat }

// ThreatTimer returns the handle of the running decay-cycle timer, or nil.
func (m *Mob) ThreatTimer() collab.TimerHandle { return m.threatTimer }

// SetThreatTimer records the decay-cycle timer handle.
func (m *Mob) SetThreatTimer(h collab.TimerHandle) { m.threatTimer = h }

// SetThreatStopper records the cancel hook for the running decay timer,
// so teardown can cancel it without holding the scheduler itself.
func (m *Mob) SetThreatStopper(stop func()) { m.threatStop = stop }

// StopThreatTimer cancels the decay timer if one is running. Safe to call
// repeatedly.
func (m *Mob) StopThreatTimer() {
	if m.threatStop != nil {
		m.threatStop()
		m.threatStop = nil
	}
	m.threatTimer = nil
}

// OnDestroy implements the mob half of recursive destruction (spec.md §3
// Lifecycle): stop the threat decay timer, drop the threat table, release
// the equipment map, clear the combat target and character back-reference,
// and drop active effects so their timers are never serviced again.
func (m *Mob) OnDestroy() {
	m.StopThreatTimer()
	for oid := range m.threat {
		delete(m.threat, oid)
	}
	m.equipped = map[string]Equippable{}
	m.combatTarget = nil
	m.character = nil
	m.sink = nil
	m.effects = nil
}

// AddCurrency implements object.CurrencyReceiver: picking up a Currency
// item folds its value into the mob's carried balance instead of adding
// the item to inventory.
func (m *Mob) AddCurrency(amount int64) { m.SetValue(m.Value() + amount) }

// FactionID returns the faction tag used by the faction-assist-call
// supplement (SPEC_FULL.md §C.1, teacher's AttackableAI.callFaction):
// mobs sharing a non-empty FactionID in the same room are pulled into a
// fight against a common attacker. Empty means no faction.
func (m *Mob) FactionID() string { return m.factionID }

// SetFactionID sets the faction tag.
func (m *Mob) SetFactionID(id string) { m.factionID = id }

// SpawnRoomRef returns the room-ref a reset last placed this mob in, set
// by the reset package at spawn time so the leash supplement
// (SPEC_FULL.md §C.2) knows where "home" is.
func (m *Mob) SpawnRoomRef() string { return m.spawnRoomRef }

// SetSpawnRoomRef records the spawn-point room-ref.
func (m *Mob) SetSpawnRoomRef(ref string) { m.spawnRoomRef = ref }

// ReturnToSpawn implements the teacher's returnHome: clears the combat
// target and threat table directly, bypassing internal/combat's queue
// bookkeeping. The caller (the room-event/AI layer that also owns the
// combat queue) is responsible for removing m from that queue, the same
// split internal/combat's own SetCombatTarget already draws between
// mob-local state and queue membership.
func (m *Mob) ReturnToSpawn() {
	m.combatTarget = nil
	for oid := range m.threat {
		delete(m.threat, oid)
	}
}

// Equipped returns the live (mutable) slot->equipment map.
func (m *Mob) Equipped() map[string]Equippable { return m.equipped }

// Equip places eq in its slot, ensures it is in the mob's contents, and
// recomputes attributes preserving health/mana ratios (spec.md §4.4
// "Equipment") through RecomputePreservingRatios.
func (m *Mob) Equip(eq Equippable) {
	m.equipped[eq.EquipSlot()] = eq
	if !m.Contains(eq) {
		object.Move(eq, m)
	}
	m.RecomputePreservingRatios()
}

// Unequip removes slot's equipment from the slot map; the item stays in
// the mob's inventory (spec.md §4.4).
func (m *Mob) Unequip(slot string) {
	delete(m.equipped, slot)
}

// LearnedAbilities returns the live (mutable) ability->state map.
func (m *Mob) LearnedAbilities() map[string]*AbilityState { return m.learned }

// ProficiencyPercent returns the cached proficiency snapshot for an
// ability id, or 0 if not learned.
func (m *Mob) ProficiencyPercent(abilityID string) int32 {
	return m.proficiencySnapshot[abilityID]
}

// LearnAbilityByID resolves id through the mob's own resolvers and learns
// it. Calling it on a mob constructed without resolvers is a caller bug
// and panics (spec.md §7 MissingArchetypeLookup).
//
// Deprecated: resolve the ability externally and call LearnArchetypeAbility
// with the resolved handle instead.
func (m *Mob) LearnAbilityByID(id string) error {
	if m.resolvers == nil {
		panic("mob: ability lookup by id requires resolvers")
	}
	a, err := m.resolvers.ResolveAbility(id)
	if err != nil {
		return err
	}
	m.LearnArchetypeAbility(a)
	return nil
}

// LearnArchetypeAbility records a newly learned ability at zero uses and
// refreshes its proficiency snapshot entry (spec.md §4.4).
func (m *Mob) LearnArchetypeAbility(a *collab.Ability) {
	if _, already := m.learned[a.ID]; already {
		return
	}
	m.learned[a.ID] = &AbilityState{Ability: a, UseCount: 0}
	m.refreshProficiency(a.ID)
}

// RecordAbilityUse increments an ability's use count and refreshes its
// proficiency snapshot, reporting whether the integer proficiency
// percent increased (spec.md §4.4: "if the integer proficiency increased,
// send a proficiency increased message" — the caller decides how/whether
// to send that message via the Send sink).
func (m *Mob) RecordAbilityUse(abilityID string) (increased bool) {
	state, ok := m.learned[abilityID]
	if !ok {
		return false
	}
	before := m.proficiencySnapshot[abilityID]
	state.UseCount++
	after := m.refreshProficiency(abilityID)
	return after > before
}

func (m *Mob) refreshProficiency(abilityID string) int32 {
	state := m.learned[abilityID]
	if state == nil || state.Ability == nil || state.Ability.Proficiency == nil {
		m.proficiencySnapshot[abilityID] = 0
		return 0
	}
	pct := state.Ability.Proficiency(state.UseCount)
	m.proficiencySnapshot[abilityID] = pct
	return pct
}

// GetUnlearnedArchetypeAbilities returns every race/job ability grant at
// or below the mob's current level that has not yet been learned
// (spec.md §4.4). The external layer resolves each AbilityGrant.AbilityID
// via a Resolvers and calls LearnArchetypeAbility.
func (m *Mob) GetUnlearnedArchetypeAbilities(race *collab.Race, job *collab.Job) []collab.AbilityGrant {
	var out []collab.AbilityGrant
	consider := func(grants []collab.AbilityGrant) {
		for _, g := range grants {
			if g.Level > m.Level {
				continue
			}
			if _, learned := m.learned[g.AbilityID]; learned {
				continue
			}
			out = append(out, g)
		}
	}
	if race != nil {
		consider(race.Abilities)
	}
	if job != nil {
		consider(job.Abilities)
	}
	return out
}

// LevelUpSummary lists every changed primary/secondary/capacity value
// across a Recompute triggered by a level-up (spec.md §4.4).
type LevelUpSummary struct {
	LevelsGained      int32
	PrimaryBefore     attr.Primary
	PrimaryAfter      attr.Primary
	SecondaryBefore   attr.Secondary
	SecondaryAfter    attr.Secondary
	CapsBefore        attr.Caps
	CapsAfter         attr.Caps
	NewlyLearnable    []collab.AbilityGrant
}

// GainExperience applies spec.md §4.4's experience formula: adjusted raw
// XP is divided by the archetype growth modifier, accumulated, and
// converted into level-ups at ExperienceThreshold XP each. Returns a
// summary when at least one level was gained, else nil.
func (m *Mob) GainExperience(raw int32, race *collab.Race, job *collab.Job, bootstrapOnLevelUp bool) *LevelUpSummary {
	growth := 1.0
	if race != nil && race.GrowthCurve != nil {
		growth *= race.GrowthCurve(m.Level)
	}
	if job != nil && job.GrowthCurve != nil {
		growth *= job.GrowthCurve(m.Level)
	}
	if growth <= 0 {
		growth = 1.0
	}
	adjusted := int32(math.Floor(float64(raw) / growth))
	if adjusted < 0 {
		adjusted = 0
	}

	primaryBefore, secondaryBefore, capsBefore := m.primary, m.secondary, m.caps

	m.experience += adjusted
	var levelsGained int32
	for m.experience >= ExperienceThreshold {
		m.experience -= ExperienceThreshold
		m.Level++
		levelsGained++
	}
	if levelsGained == 0 {
		return nil
	}

	healthRatio, manaRatio := m.HealthRatio(), m.ManaRatio()
	m.Recompute(race, job, false, healthRatio, manaRatio)

	return &LevelUpSummary{
		LevelsGained:    levelsGained,
		PrimaryBefore:   primaryBefore,
		PrimaryAfter:    m.primary,
		SecondaryBefore: secondaryBefore,
		SecondaryAfter:  m.secondary,
		CapsBefore:      capsBefore,
		CapsAfter:       m.caps,
		NewlyLearnable:  m.GetUnlearnedArchetypeAbilities(race, job),
	}
}

// AwardKillExperience computes a kill's raw XP award from the level
// difference between killer and target, then feeds it into
// GainExperience (spec.md §4.4).
func (m *Mob) AwardKillExperience(targetLevel int32, race *collab.Race, job *collab.Job) *LevelUpSummary {
	const base = 10
	diff := targetLevel - m.Level
	var raw int32
	switch {
	case diff > 0:
		raw = base + 2*diff
	case diff < 0:
		raw = base + diff
		if raw < 1 {
			raw = 1
		}
	default:
		raw = base
	}
	return m.GainExperience(raw, race, job, false)
}

// Experience returns the current in-level XP accumulation.
func (m *Mob) Experience() int32 { return m.experience }

// AIScript returns the verbatim AI script string handed to an external
// evaluator (spec.md §1 Non-goals: scripting-language embedding is out of
// scope; the core only stores and returns the string).
func (m *Mob) AIScript() string { return m.aiScript }

// SetAIScript sets the AI script string.
func (m *Mob) SetAIScript(s string) { m.aiScript = s }
