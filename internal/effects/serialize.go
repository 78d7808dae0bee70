package effects

import (
	"math"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/mob"
)

// Serialize produces the compressed wire record for a single active
// instance (spec.md §4.6 "Serialization", §6 schema). Archetype passives are
// never serialized — they are re-applied on load from the mob's resolved
// race/job — and an instance that has already expired by now is dropped
// rather than written out.
func Serialize(inst *Instance, now int64) (map[string]any, bool) {
	if inst.Template.Kind == collab.EffectPassive && inst.Template.Archetype {
		return nil, false
	}
	if inst.Template.Kind != collab.EffectShield && now >= inst.ExpiresAtMs {
		return nil, false
	}

	var casterOID int64
	if inst.Caster != nil {
		casterOID = inst.Caster.Base().ObjectID()
	}

	out := map[string]any{
		"effectId":  inst.Template.ID,
		"casterOid": casterOID,
	}
	switch inst.Template.Kind {
	case collab.EffectDoT, collab.EffectHoT:
		out["remainingDuration"] = inst.ExpiresAtMs - now
		out["nextTickIn"] = inst.NextTickAtMs - now
		out["ticksRemaining"] = inst.TicksRemaining
		out["tickAmount"] = inst.TickAmount
	case collab.EffectShield:
		out["remainingAbsorption"] = inst.RemainingAbsorption
	case collab.EffectPassive:
		// Permanent passives (ExpiresAtMs == math.MaxInt64) omit
		// remainingDuration entirely (spec.md §4.6).
		if inst.ExpiresAtMs != math.MaxInt64 {
			out["remainingDuration"] = inst.ExpiresAtMs - now
		}
	}
	return out, true
}

// SerializeActive serializes every currently active, serializable instance
// on m, in the order AddEffect applied them.
func SerializeActive(m *mob.Mob, now int64) []map[string]any {
	var out []map[string]any
	for _, e := range m.ActiveEffects() {
		inst, ok := e.(*Instance)
		if !ok {
			continue
		}
		if rec, ok := Serialize(inst, now); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Restore replays a serialized effect record exactly, via AddEffect's
// restore path (spec.md §4.6 "enables crash recovery"): no onApply message,
// no fresh duration/tick computation. resolveCaster looks the caster oid up
// in whatever live-mob index the caller has available (a dungeon's contents
// registry, typically); a caster that can no longer be found restores with a
// nil caster.
func Restore(m *mob.Mob, tmpl *collab.EffectTemplate, now int64, record map[string]any, resolveCaster func(oid int64) *mob.Mob) *Instance {
	restore := &Restoration{
		RemainingDurationMs: asInt64(record["remainingDuration"]),
		NextTickInMs:        asInt64(record["nextTickIn"]),
		TicksRemaining:      int32(asInt64(record["ticksRemaining"])),
		TickAmount:          int32(asInt64(record["tickAmount"])),
		RemainingAbsorption: int32(asInt64(record["remainingAbsorption"])),
	}
	var caster *mob.Mob
	if resolveCaster != nil {
		caster = resolveCaster(asInt64(record["casterOid"]))
	}
	return AddEffect(m, tmpl, caster, now, restore, nil, nil, nil)
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
