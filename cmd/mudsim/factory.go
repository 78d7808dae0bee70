package main

import (
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/object"
)

// ObjectFactory implements collab.Factory by dispatching on a Template's
// type tag, pulling override fields out of Template.Overrides (spec.md §6
// "CreateFromTemplate(template, oid?) -> Object — owned by the package
// layer"). Grounded on the teacher's spawn.Manager minting NPCs from
// data.NpcTemplate (internal/spawn/manager.go's DoSpawn), generalized from
// a hard-coded struct-field template to the open map[string]any overrides
// this module's Template carries.
type ObjectFactory struct {
	mint      func() int64
	resolvers collab.Resolvers
}

// NewObjectFactory constructs a factory minting oids through mint (shared
// with whatever else in the process mints oids, e.g. room generation, so
// the whole demo process draws from one sequence), resolving Mob
// race/job/ability data through resolvers.
func NewObjectFactory(mint func() int64, resolvers collab.Resolvers) *ObjectFactory {
	return &ObjectFactory{mint: mint, resolvers: resolvers}
}

// CreateFromTemplate implements collab.Factory. oid of 0 means "mint a
// fresh one"; a caller rehydrating a saved object passes its known oid.
func (f *ObjectFactory) CreateFromTemplate(tmpl *object.Template, oid int64) object.Node {
	if oid == 0 {
		oid = f.mint()
	}
	ov := tmpl.Overrides

	keywords := str(ov, "keywords", tmpl.ID)
	display := str(ov, "display", tmpl.ID)
	weight := num(ov, "baseWeight", 0)

	switch tmpl.Type {
	case "Mob":
		race := str(ov, "race", "")
		job := str(ov, "job", "")
		level := int32(num(ov, "level", 1))
		m := mob.New(oid, keywords, display, weight, race, job, level, f.resolvers)
		m.SetTemplateID(tmpl.ID)
		m.SetBehaviors(behaviorFlags(ov))
		m.SetFactionID(str(ov, "faction", ""))
		m.SetAIScript(str(ov, "aiScript", ""))
		bootstrapMob(m, f.resolvers)
		return m
	case "weapon":
		hitTag := str(ov, "hitType", "blunt")
		w := object.NewWeapon(oid, keywords, display, weight, str(ov, "slot", "mainhand"),
			int32(num(ov, "attackPower", 0)), hitTag, str(ov, "weaponType", ""))
		w.SetTemplateID(tmpl.ID)
		return w
	case "armor":
		a := object.NewArmor(oid, keywords, display, weight, str(ov, "slot", "chest"), int32(num(ov, "defense", 0)))
		a.SetTemplateID(tmpl.ID)
		return a
	case "equipment":
		e := object.NewEquipment(oid, keywords, display, weight, str(ov, "slot", ""))
		e.SetTemplateID(tmpl.ID)
		return e
	case "currency":
		c := object.NewCurrency(oid, display, int64(num(ov, "value", 0)))
		c.SetTemplateID(tmpl.ID)
		return c
	case "prop":
		p := object.NewProp(oid, keywords, display, weight)
		p.SetTemplateID(tmpl.ID)
		return p
	default: // "item" and anything unrecognized fall back to a plain Item
		it := object.NewItem(oid, keywords, display, weight, boolField(ov, "isContainer"))
		it.SetTemplateID(tmpl.ID)
		return it
	}
}

// bootstrapMob resolves the mob's race/job and runs its first Recompute in
// bootstrap mode (spec.md §4.4 step 6: "if bootstrapping: reset health/mana
// to max"), mirroring the teacher's NewCharacter->RecalcStats sequence.
func bootstrapMob(m *mob.Mob, resolvers collab.Resolvers) {
	var race *collab.Race
	var job *collab.Job
	if resolvers != nil {
		if r, err := resolvers.ResolveRace(m.RaceID); err == nil {
			race = r
		}
		if j, err := resolvers.ResolveJob(m.JobID); err == nil {
			job = j
		}
	}
	m.Recompute(race, job, true, -1, -1)
}

func behaviorFlags(ov map[string]any) mob.Behavior {
	bh, ok := ov["behaviors"].(map[string]any)
	if !ok {
		return 0
	}
	var flags mob.Behavior
	if boolField(bh, "aggressive") {
		flags |= mob.Aggressive
	}
	if boolField(bh, "wimpy") {
		flags |= mob.Wimpy
	}
	if boolField(bh, "wander") {
		flags |= mob.Wander
	}
	if boolField(bh, "shopkeeper") {
		flags |= mob.Shopkeeper
	}
	return flags
}

func str(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func num(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return def
	}
}

func boolField(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}
