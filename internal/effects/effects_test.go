package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/mob"
)

func newTestMob(oid int64) *mob.Mob {
	m := mob.New(oid, "npc", "npc", 10, "", "", 1, nil)
	m.Recompute(nil, nil, true, -1, -1)
	return m
}

func TestAddEffectDoTAppliesDamageOverTime(t *testing.T) {
	target := newTestMob(1)
	caster := newTestMob(2)

	tmpl := &collab.EffectTemplate{
		ID:          "poison",
		Kind:        collab.EffectDoT,
		Amount:      5,
		IntervalSec: 2,
		Duration:    6,
		IsOffensive: true,
	}

	inst := AddEffect(target, tmpl, caster, 0, nil, nil, nil, nil)
	require.EqualValues(t, 3, inst.TicksRemaining, "3 ticks over 6s at 2s interval")
	require.EqualValues(t, 2000, inst.NextTickAtMs)
	require.EqualValues(t, 6000, inst.ExpiresAtMs)

	var totalDamage int32
	ProcessTick(target, 2000, func(amount int32) { totalDamage += amount }, nil, nil)
	require.EqualValues(t, 5, totalDamage, "5 damage at first tick")
	require.EqualValues(t, 2, inst.TicksRemaining)

	// Drift-free: next tick time advances by exactly one interval from the
	// prior tick time, not from the delivery time.
	ProcessTick(target, 4500, func(amount int32) { totalDamage += amount }, nil, nil)
	require.EqualValues(t, 10, totalDamage, "cumulative damage after second tick")
	require.EqualValues(t, 6000, inst.NextTickAtMs)

	ProcessTick(target, 6000, func(amount int32) { totalDamage += amount }, nil, func(_ *mob.Mob, msg string) {})
	require.EqualValues(t, 15, totalDamage, "cumulative damage after third tick")
	require.Empty(t, target.ActiveEffects(), "effect removed at expiry")
}

func TestAddEffectOffensiveDoTInitiatesCombat(t *testing.T) {
	target := newTestMob(1)
	caster := newTestMob(2)
	tmpl := &collab.EffectTemplate{ID: "burn", Kind: collab.EffectDoT, Amount: 1, IntervalSec: 1, Duration: 1, IsOffensive: true}

	AddEffect(target, tmpl, caster, 0, nil, nil, nil, nil)

	require.Equal(t, caster, target.CombatTarget(), "offensive DoT sets combat target to caster")
}

func TestAddEffectNonStackableReplacesExisting(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "weaken", Kind: collab.EffectPassive, Stackable: false, PrimaryMod: collab.Primary{Strength: -5}}

	AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)
	AddEffect(target, tmpl, nil, 1000, nil, nil, nil, nil)

	require.Len(t, target.ActiveEffects(), 1, "non-stackable effect replaces rather than stacks")
}

func TestRestorePreservesExactTimerState(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "poison", Kind: collab.EffectDoT, Amount: 7, IntervalSec: 2, Duration: 10}

	record := map[string]any{
		"effectId":          "poison",
		"casterOid":         int64(0),
		"remainingDuration": int64(4000),
		"nextTickIn":        int64(1500),
		"ticksRemaining":    int32(2),
		"tickAmount":        int32(7),
	}

	inst := Restore(target, tmpl, 100_000, record, nil)
	require.EqualValues(t, 104_000, inst.ExpiresAtMs)
	require.EqualValues(t, 101_500, inst.NextTickAtMs)
	require.EqualValues(t, 2, inst.TicksRemaining)
}

func TestSerializeOmitsArchetypePassivesAndExpiredEffects(t *testing.T) {
	target := newTestMob(1)

	archetype := &collab.EffectTemplate{ID: "racial", Kind: collab.EffectPassive, Archetype: true}
	inst := AddEffect(target, archetype, nil, 0, nil, nil, nil, nil)
	_, ok := Serialize(inst, 0)
	require.False(t, ok, "archetype passive is omitted from serialization")

	expiring := &collab.EffectTemplate{ID: "brief", Kind: collab.EffectDoT, Amount: 1, IntervalSec: 1, Duration: 1}
	inst2 := AddEffect(target, expiring, nil, 0, nil, nil, nil, nil)
	_, ok = Serialize(inst2, 2000)
	require.False(t, ok, "expired effect is omitted from serialization")

	rec, ok := Serialize(inst2, 500)
	require.True(t, ok)
	require.Equal(t, int64(500), rec["remainingDuration"])
}

func TestSerializePermanentPassiveOmitsRemainingDuration(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "blessing", Kind: collab.EffectPassive}
	inst := AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)
	require.EqualValues(t, int64(math.MaxInt64), inst.ExpiresAtMs, "permanent passive carries MaxInt64 expiry")

	rec, ok := Serialize(inst, 0)
	require.True(t, ok)
	require.NotContains(t, rec, "remainingDuration")
}

func TestRestorePermanentPassiveNeverExpires(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "blessing", Kind: collab.EffectPassive}

	// A permanent passive serializes without remainingDuration; restoring
	// that record must yield a permanent instance again, not one expiring
	// at the restore instant.
	record := map[string]any{"effectId": "blessing", "casterOid": int64(0)}
	inst := Restore(target, tmpl, 50_000, record, nil)
	require.EqualValues(t, int64(math.MaxInt64), inst.ExpiresAtMs)

	ProcessTick(target, 60_000, nil, nil, nil)
	require.Len(t, target.ActiveEffects(), 1, "permanent passive survives ticks")
}

func TestHoTHealsOverTime(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "regen", Kind: collab.EffectHoT, Amount: 15, IntervalSec: 3, Duration: 12}

	AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)

	var healed int32
	ProcessTick(target, 3_000, nil, func(amount int32) { healed += amount }, nil)
	require.EqualValues(t, 15, healed)
	ProcessTick(target, 12_000, nil, func(amount int32) { healed += amount }, nil)
	require.EqualValues(t, 60, healed, "all four ticks delivered by expiry")
	require.Empty(t, target.ActiveEffects())
}

func TestTimedPassiveRecomputesOnApplyAndExpire(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{
		ID:          "ironskin",
		Kind:        collab.EffectPassive,
		PrimaryMod:  collab.Primary{Strength: 10},
		DurationSec: 30,
	}

	base := target.Primary().Strength
	AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)
	require.Equal(t, base+10, target.Primary().Strength, "passive folds into recompute")

	ProcessTick(target, 30_000, nil, nil, nil)
	require.Empty(t, target.ActiveEffects())
	require.Equal(t, base, target.Primary().Strength, "expiry recomputes back down")
}

// TestShieldAbsorptionInstanceMath mirrors spec.md §8 scenario 5 at the
// effects-instance level, exercising Instance's combat.ShieldEffect
// implementation directly.
func TestShieldAbsorptionInstanceMath(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{
		ID:                  "ward",
		Kind:                collab.EffectShield,
		Absorption:          50,
		AbsorptionRate:      0.5,
		MaxAbsorptionPerHit: 20,
		DamageTypeFilter:    "physical",
	}
	inst := AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)

	require.True(t, inst.DamageTypeMatches("physical"))
	require.False(t, inst.DamageTypeMatches("fire"))
	require.EqualValues(t, 50, inst.RemainingCapacity())

	inst.Absorb(20)
	require.EqualValues(t, 30, inst.RemainingCapacity())
	require.False(t, inst.IsDepleted())
}

func TestShieldViewRemoveShieldOnDepletion(t *testing.T) {
	target := newTestMob(1)
	tmpl := &collab.EffectTemplate{ID: "ward", Kind: collab.EffectShield, Absorption: 10}
	inst := AddEffect(target, tmpl, nil, 0, nil, nil, nil, nil)
	inst.Absorb(10)
	require.True(t, inst.IsDepleted())

	view := ShieldView{M: target}
	view.RemoveShield(inst)
	require.Empty(t, target.ActiveEffects(), "depleted shield is removed from active effects")
}
