package mob

import (
	"github.com/brackenmoor/mudcore/internal/attr"
	"github.com/brackenmoor/mudcore/internal/object"
)

func init() {
	object.RegisterTypeDefault("Mob", map[string]any{
		"baseWeight":       float64(0),
		"experience":       int32(0),
		"exhaustion":       int32(0),
		"attributeBonuses": primaryMap(attr.Primary{}),
		"resourceBonuses":  capsMap(attr.Caps{}),
		"equipped":         map[string]any{},
		"learnedAbilities": map[string]any{},
		"behaviors": map[string]any{
			"aggressive": false,
			"wimpy":      false,
			"wander":     false,
			"shopkeeper": false,
		},
	})
}

// TypeTag implements the object serialization type tag (spec.md §6).
func (m *Mob) TypeTag() string { return "Mob" }

// ExtraFields contributes every Mob-specific serialized field (spec.md §6
// schema). Active effect timers are deliberately left out here: they need a
// wall-clock reading to express remaining duration, which the pure
// object.Serialize call site never carries — internal/persist calls
// effects.SerializeActive separately and merges the "effects" key in before
// compressing, rather than mob importing effects to reach it (that import
// would cycle: effects already imports mob).
func (m *Mob) ExtraFields() map[string]any {
	equipped := map[string]any{}
	for slot, eq := range m.equipped {
		equipped[slot] = object.Serialize(eq)
	}

	learned := map[string]any{}
	for id, state := range m.learned {
		learned[id] = state.UseCount
	}

	return map[string]any{
		"level":            m.Level,
		"experience":       m.experience,
		"race":             m.RaceID,
		"job":              m.JobID,
		"attributeBonuses": primaryMap(m.runtimeAttributeBonus),
		"resourceBonuses":  capsMap(m.runtimeResourceBonus),
		"health":           m.health,
		"mana":             m.mana,
		"exhaustion":       m.exhaustion,
		"equipped":         equipped,
		"behaviors": map[string]any{
			"aggressive": m.behaviors.Has(Aggressive),
			"wimpy":      m.behaviors.Has(Wimpy),
			"wander":     m.behaviors.Has(Wander),
			"shopkeeper": m.behaviors.Has(Shopkeeper),
		},
		"learnedAbilities": learned,
	}
}

func primaryMap(p attr.Primary) map[string]any {
	return map[string]any{
		"strength":     p.Strength,
		"agility":      p.Agility,
		"intelligence": p.Intelligence,
	}
}

func capsMap(c attr.Caps) map[string]any {
	return map[string]any{"maxHealth": c.MaxHealth, "maxMana": c.MaxMana}
}
