// Package worlddata supplies YAML-backed implementations of the
// collab.Resolvers bundle (spec.md §6: ResolveRace/ResolveJob/
// ResolveAbility/ResolveEffect) plus an object.Template catalog, the one
// piece of "file-format loading" spec.md §1 allows (it is the resolver the
// core calls into, not the core itself). Grounded on the teacher's
// internal/config package's yaml.v3 decode-into-struct idiom
// (internal/config/config.go's LoadLoginServer), generalized from server
// configuration to archetype/ability/effect/template catalogs
// (SPEC_FULL.md §C.4).
package worlddata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/simerr"
)

// Document is the top-level shape of a catalog YAML file.
type Document struct {
	Races     map[string]RaceDoc     `yaml:"races"`
	Jobs      map[string]JobDoc      `yaml:"jobs"`
	Abilities map[string]AbilityDoc  `yaml:"abilities"`
	Effects   map[string]EffectDoc   `yaml:"effects"`
	Templates map[string]TemplateDoc `yaml:"templates"`
}

// PrimaryDoc mirrors collab.Primary for YAML decoding.
type PrimaryDoc struct {
	Strength     float64 `yaml:"strength"`
	Agility      float64 `yaml:"agility"`
	Intelligence float64 `yaml:"intelligence"`
}

func (p PrimaryDoc) toCollab() collab.Primary {
	return collab.Primary{Strength: p.Strength, Agility: p.Agility, Intelligence: p.Intelligence}
}

// AbilityGrantDoc mirrors collab.AbilityGrant.
type AbilityGrantDoc struct {
	AbilityID string `yaml:"abilityId"`
	Level     int32  `yaml:"level"`
}

// RaceDoc is the YAML shape of a race archetype (spec.md §4.4 "Archetype
// abilities"). GrowthCurvePoly is a polynomial in level, lowest-degree
// coefficient first (c0 + c1*level + c2*level^2 + ...), evaluated by
// Polynomial.
type RaceDoc struct {
	Start           PrimaryDoc        `yaml:"start"`
	Growth          PrimaryDoc        `yaml:"growth"`
	Abilities       []AbilityGrantDoc `yaml:"abilities"`
	GrowthCurvePoly []float64         `yaml:"growthCurve"`
}

// JobDoc mirrors RaceDoc for the job half of a mob's archetype.
type JobDoc struct {
	Start           PrimaryDoc        `yaml:"start"`
	Growth          PrimaryDoc        `yaml:"growth"`
	Abilities       []AbilityGrantDoc `yaml:"abilities"`
	GrowthCurvePoly []float64         `yaml:"growthCurve"`
}

// AbilityDoc is the YAML shape of a learnable ability. ProficiencyPoly is
// evaluated against useCount the same way GrowthCurvePoly is against level,
// then clamped to [0, 100] (spec.md §4.4 "proficiencyPercent(0..100)").
type AbilityDoc struct {
	DisplayName     string    `yaml:"displayName"`
	ProficiencyPoly []float64 `yaml:"proficiencyCurve"`
}

// EffectDoc is the YAML shape of an effect template (spec.md §4.6).
type EffectDoc struct {
	Kind       string `yaml:"kind"` // "passive" | "dot" | "hot" | "shield"
	Stackable  bool   `yaml:"stackable"`
	OnApply    string `yaml:"onApply"`
	OnExpire   string `yaml:"onExpire"`
	Archetype  bool   `yaml:"archetype"`

	// Passive
	PrimaryMod   PrimaryDoc       `yaml:"primaryMod"`
	SecondaryMod map[string]int32 `yaml:"secondaryMod"`
	ResourceMod  map[string]int32 `yaml:"resourceMod"`
	DurationSec  float64          `yaml:"durationSec"`

	// DoT / HoT
	Amount      int32   `yaml:"amount"`
	IntervalSec float64 `yaml:"intervalSec"`
	Duration    float64 `yaml:"duration"`
	IsOffensive bool    `yaml:"isOffensive"`

	// Shield
	Absorption          int32   `yaml:"absorption"`
	AbsorptionRate      float64 `yaml:"absorptionRate"`
	MaxAbsorptionPerHit int32   `yaml:"maxAbsorptionPerHit"`
	DamageTypeFilter    string  `yaml:"damageTypeFilter"`
}

// TemplateDoc is the YAML shape of an object.Template entry: a type tag
// plus whatever fields override the compile-time default for that type
// (spec.md §4.1 "Templates").
type TemplateDoc struct {
	Type      string         `yaml:"type"`
	Overrides map[string]any `yaml:"overrides"`
}

// Catalog is the loaded, resolved form of a Document: collab.Race/Job/
// Ability/EffectTemplate values with their curve closures built, plus the
// object.Template table. Implements collab.Resolvers and
// reset.GlobalTemplates/persist.TemplateResolver.
type Catalog struct {
	races     map[string]*collab.Race
	jobs      map[string]*collab.Job
	abilities map[string]*collab.Ability
	effects   map[string]*collab.EffectTemplate
	templates map[string]*object.Template
}

// Load reads and parses a YAML catalog file at path into a Catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world data %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Catalog from raw YAML bytes, resolving polynomial curve
// closures and effect-kind tags eagerly so later Resolve* calls are pure
// map lookups.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing world data: %w", err)
	}

	c := &Catalog{
		races:     map[string]*collab.Race{},
		jobs:      map[string]*collab.Job{},
		abilities: map[string]*collab.Ability{},
		effects:   map[string]*collab.EffectTemplate{},
		templates: map[string]*object.Template{},
	}

	for id, r := range doc.Races {
		grants := make([]collab.AbilityGrant, 0, len(r.Abilities))
		for _, g := range r.Abilities {
			grants = append(grants, collab.AbilityGrant{AbilityID: g.AbilityID, Level: g.Level})
		}
		poly := r.GrowthCurvePoly
		c.races[id] = &collab.Race{
			ID:          id,
			Start:       r.Start.toCollab(),
			Growth:      r.Growth.toCollab(),
			Abilities:   grants,
			GrowthCurve: func(level int32) float64 { return Polynomial(poly, float64(level)) },
		}
	}

	for id, j := range doc.Jobs {
		grants := make([]collab.AbilityGrant, 0, len(j.Abilities))
		for _, g := range j.Abilities {
			grants = append(grants, collab.AbilityGrant{AbilityID: g.AbilityID, Level: g.Level})
		}
		poly := j.GrowthCurvePoly
		c.jobs[id] = &collab.Job{
			ID:          id,
			Start:       j.Start.toCollab(),
			Growth:      j.Growth.toCollab(),
			Abilities:   grants,
			GrowthCurve: func(level int32) float64 { return Polynomial(poly, float64(level)) },
		}
	}

	for id, a := range doc.Abilities {
		poly := a.ProficiencyPoly
		c.abilities[id] = &collab.Ability{
			ID:          id,
			DisplayName: a.DisplayName,
			Proficiency: func(useCount int32) int32 {
				pct := int32(Polynomial(poly, float64(useCount)))
				return clampPercent(pct)
			},
		}
	}

	for id, e := range doc.Effects {
		kind, err := parseEffectKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", id, err)
		}
		c.effects[id] = &collab.EffectTemplate{
			ID:                  id,
			Kind:                kind,
			Stackable:           e.Stackable,
			OnApply:             e.OnApply,
			OnExpire:            e.OnExpire,
			Archetype:           e.Archetype,
			PrimaryMod:          e.PrimaryMod.toCollab(),
			SecondaryMod:        e.SecondaryMod,
			ResourceMod:         e.ResourceMod,
			DurationSec:         e.DurationSec,
			Amount:              e.Amount,
			IntervalSec:         e.IntervalSec,
			Duration:            e.Duration,
			IsOffensive:         e.IsOffensive,
			Absorption:          e.Absorption,
			AbsorptionRate:      e.AbsorptionRate,
			MaxAbsorptionPerHit: e.MaxAbsorptionPerHit,
			DamageTypeFilter:    e.DamageTypeFilter,
		}
	}

	for id, t := range doc.Templates {
		c.templates[id] = &object.Template{ID: id, Type: t.Type, Overrides: t.Overrides}
	}

	return c, nil
}

// Polynomial evaluates c[0] + c[1]*x + c[2]*x^2 + ... ; an empty
// coefficient slice evaluates to 1.0 (a neutral growth modifier, spec.md
// §4.4 "growthModifier ... clamped positive").
func Polynomial(coeffs []float64, x float64) float64 {
	if len(coeffs) == 0 {
		return 1.0
	}
	result := 0.0
	power := 1.0
	for _, c := range coeffs {
		result += c * power
		power *= x
	}
	return result
}

func clampPercent(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func parseEffectKind(s string) (collab.EffectKind, error) {
	switch s {
	case "passive":
		return collab.EffectPassive, nil
	case "dot":
		return collab.EffectDoT, nil
	case "hot":
		return collab.EffectHoT, nil
	case "shield":
		return collab.EffectShield, nil
	default:
		return 0, fmt.Errorf("unknown effect kind %q", s)
	}
}

// ResolveRace implements collab.Resolvers.
func (c *Catalog) ResolveRace(id string) (*collab.Race, error) {
	r, ok := c.races[id]
	if !ok {
		return nil, fmt.Errorf("race %q: %w", id, simerr.ErrUnknownTemplate)
	}
	return r, nil
}

// ResolveJob implements collab.Resolvers.
func (c *Catalog) ResolveJob(id string) (*collab.Job, error) {
	j, ok := c.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %q: %w", id, simerr.ErrUnknownTemplate)
	}
	return j, nil
}

// ResolveAbility implements collab.Resolvers.
func (c *Catalog) ResolveAbility(id string) (*collab.Ability, error) {
	a, ok := c.abilities[id]
	if !ok {
		return nil, fmt.Errorf("ability %q: %w", id, simerr.ErrUnknownTemplate)
	}
	return a, nil
}

// ResolveEffect implements collab.Resolvers.
func (c *Catalog) ResolveEffect(id string) (*collab.EffectTemplate, error) {
	e, ok := c.effects[id]
	if !ok {
		return nil, fmt.Errorf("effect %q: %w", id, simerr.ErrUnknownTemplate)
	}
	return e, nil
}

// ResolveTemplate implements reset.GlobalTemplates and
// persist.TemplateResolver: a process-wide template catalog independent of
// any single dungeon's local table (spec.md §4.7 "local dungeon first, then
// global").
func (c *Catalog) ResolveTemplate(id string) (*object.Template, error) {
	t, ok := c.templates[id]
	if !ok {
		return nil, simerr.ErrUnknownTemplate
	}
	return t, nil
}

// RaceIDs, JobIDs, AbilityIDs, EffectIDs, and TemplateIDs return every
// catalog key, primarily useful to cmd/mudsim's demo seeding and to tests
// that want to exercise every defined entry.
func (c *Catalog) RaceIDs() []string     { return keysOf(c.races) }
func (c *Catalog) JobIDs() []string      { return keysOf(c.jobs) }
func (c *Catalog) AbilityIDs() []string  { return keysOf(c.abilities) }
func (c *Catalog) EffectIDs() []string   { return keysOf(c.effects) }
func (c *Catalog) TemplateIDs() []string { return keysOf(c.templates) }

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
