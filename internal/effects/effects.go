// Package effects implements the timed-effect engine (spec.md C8): passive
// modifiers, damage-over-time, heal-over-time, and absorption shields, their
// stack policy, apply/expire lifecycle, and restoration from a serialized
// remaining-duration. It depends on mob and, one-directionally, on combat
// (to initiate combat when an offensive DoT lands and to satisfy combat's
// ShieldEffect/Shields seam) — combat never imports effects, matching the
// callback-injection idiom grounded on internal/ai/attackable_ai.go and kept
// acyclic the same way internal/world and internal/mob are (see DESIGN.md).
package effects

import (
	"math"

	"github.com/brackenmoor/mudcore/internal/attr"
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/combat"
	"github.com/brackenmoor/mudcore/internal/mob"
)

// MillisPerSecond converts the template's float-seconds fields into the
// core's millisecond clock (spec.md §6 Clock.NowMs).
const MillisPerSecond = 1000

// Instance is a single applied effect, tracking its own timers independent
// of the template it was created from (spec.md §4.6).
type Instance struct {
	Template *collab.EffectTemplate
	Caster   *mob.Mob

	AppliedAtMs int64
	ExpiresAtMs int64 // math.MaxInt64 == permanent (passives, shields)

	NextTickAtMs   int64
	TicksRemaining int32
	TickAmount     int32

	RemainingAbsorption int32
}

// Restoration carries the exact remaining-duration/tick state recovered from
// a serialized record, so a crash-recovered effect resumes exactly where it
// left off rather than restarting its clock (spec.md §4.6 "enables crash
// recovery").
type Restoration struct {
	RemainingDurationMs int64
	NextTickInMs        int64
	TicksRemaining      int32
	TickAmount          int32
	RemainingAbsorption int32
}

// AddEffect applies tmpl to m (spec.md §4.6 "Apply semantics"). caster may be
// nil for environmental effects. now is the applying clock reading
// (collab.Clock.NowMs). restore, when non-nil, replays exact timer state from
// a serialized record instead of starting a fresh duration/tick cycle. q and
// onLeaveCombat are forwarded to combat.SetCombatTarget only when an
// offensive DoT needs to initiate combat. onApply narrates the template's
// optional onApply message and is skipped entirely during restoration.
func AddEffect(m *mob.Mob, tmpl *collab.EffectTemplate, caster *mob.Mob, now int64, restore *Restoration, q combat.Queue, onLeaveCombat func(*mob.Mob), onApply func(target, caster *mob.Mob, message string)) *Instance {
	if !tmpl.Stackable {
		RemoveEffectsByID(m, tmpl.ID)
	}

	inst := &Instance{Template: tmpl, Caster: caster, AppliedAtMs: now}

	switch tmpl.Kind {
	case collab.EffectDoT, collab.EffectHoT:
		if restore != nil {
			inst.ExpiresAtMs = now + restore.RemainingDurationMs
			inst.NextTickAtMs = now + restore.NextTickInMs
			inst.TicksRemaining = restore.TicksRemaining
			inst.TickAmount = restore.TickAmount
		} else {
			inst.ExpiresAtMs = now + int64(tmpl.Duration*MillisPerSecond)
			inst.NextTickAtMs = now + int64(tmpl.IntervalSec*MillisPerSecond)
			inst.TicksRemaining = int32(math.Floor(tmpl.Duration / tmpl.IntervalSec))
			inst.TickAmount = tmpl.Amount
		}
	case collab.EffectShield:
		inst.ExpiresAtMs = math.MaxInt64
		if restore != nil {
			inst.RemainingAbsorption = restore.RemainingAbsorption
		} else {
			inst.RemainingAbsorption = tmpl.Absorption
		}
	case collab.EffectPassive:
		switch {
		case restore != nil && restore.RemainingDurationMs > 0:
			inst.ExpiresAtMs = now + restore.RemainingDurationMs
		case restore != nil:
			// Serialized permanent passives omit remainingDuration
			// entirely; a zero restore value means "never expires".
			inst.ExpiresAtMs = math.MaxInt64
		case tmpl.DurationSec > 0:
			inst.ExpiresAtMs = now + int64(tmpl.DurationSec*MillisPerSecond)
		default:
			inst.ExpiresAtMs = math.MaxInt64
		}
	}

	m.AddEffectInstance(inst)

	if restore == nil && onApply != nil && tmpl.OnApply != "" {
		onApply(m, caster, tmpl.OnApply)
	}

	if tmpl.Kind == collab.EffectPassive && hasModifiers(tmpl) {
		m.RecomputePreservingRatios()
	}

	if tmpl.Kind == collab.EffectDoT && tmpl.IsOffensive && caster != nil && caster != m && m.CombatTarget() == nil {
		combat.SetCombatTarget(m, caster, q, onLeaveCombat)
	}

	return inst
}

func hasModifiers(tmpl *collab.EffectTemplate) bool {
	if tmpl.PrimaryMod != (collab.Primary{}) {
		return true
	}
	return len(tmpl.SecondaryMod) > 0 || len(tmpl.ResourceMod) > 0
}

// RemoveEffect detaches inst from m (spec.md §4.6 "Expire / remove").
// onExpire fires only when the caller explicitly asks (showExpireMessage) or
// when now has actually reached inst.ExpiresAtMs; a manual early removal
// (e.g. dispel) passes showExpireMessage=false to stay silent.
func RemoveEffect(m *mob.Mob, inst *Instance, now int64, showExpireMessage bool, onExpire func(target *mob.Mob, message string)) {
	m.RemoveEffectInstance(inst)
	if (showExpireMessage || now >= inst.ExpiresAtMs) && onExpire != nil && inst.Template.OnExpire != "" {
		onExpire(m, inst.Template.OnExpire)
	}
	if inst.Template.Kind == collab.EffectPassive {
		m.RecomputePreservingRatios()
	}
}

// RemoveEffectsByID bulk-removes every active instance of id from m without
// any expiration messaging (spec.md §4.6).
func RemoveEffectsByID(m *mob.Mob, id string) {
	recompute := false
	for _, e := range m.ActiveEffects() {
		inst, ok := e.(*Instance)
		if !ok || inst.Template.ID != id {
			continue
		}
		m.RemoveEffectInstance(inst)
		if inst.Template.Kind == collab.EffectPassive {
			recompute = true
		}
	}
	if recompute {
		m.RecomputePreservingRatios()
	}
}

// ProcessTick services one driver pass over m's active DoT/HoT/duration-
// bound passive effects (spec.md §4.6, §5 "nextTickAt is derived from
// appliedAt, not from wall-clock at delivery, to prevent drift" — each tick
// advances NextTickAtMs by exactly one interval rather than resyncing to
// now). dealDamage/heal apply one tick's worth of the effect; onExpire
// narrates a natural expiry.
func ProcessTick(m *mob.Mob, now int64, dealDamage func(amount int32), heal func(amount int32), onExpire func(target *mob.Mob, message string)) {
	for _, e := range m.ActiveEffects() {
		inst, ok := e.(*Instance)
		if !ok {
			continue
		}
		switch inst.Template.Kind {
		case collab.EffectDoT, collab.EffectHoT:
			for inst.TicksRemaining > 0 && inst.NextTickAtMs <= now {
				switch inst.Template.Kind {
				case collab.EffectDoT:
					if dealDamage != nil {
						dealDamage(inst.TickAmount)
					}
				case collab.EffectHoT:
					if heal != nil {
						heal(inst.TickAmount)
					}
				}
				inst.TicksRemaining--
				inst.NextTickAtMs += int64(inst.Template.IntervalSec * MillisPerSecond)
			}
			if inst.TicksRemaining <= 0 || now >= inst.ExpiresAtMs {
				RemoveEffect(m, inst, now, true, onExpire)
			}
		case collab.EffectPassive:
			if inst.ExpiresAtMs != math.MaxInt64 && now >= inst.ExpiresAtMs {
				RemoveEffect(m, inst, now, true, onExpire)
			}
		}
	}
}

// PrimaryModifier, SecondaryModifier, ResourceModifier, and IsPassive
// implement mob.Effect: only a Passive instance contributes to attribute
// recomputation (spec.md §4.4 step 2); DoT/HoT/Shield instances contribute
// nothing here.
func (inst *Instance) PrimaryModifier() attr.Primary {
	if inst.Template.Kind != collab.EffectPassive {
		return attr.Primary{}
	}
	return attr.Primary{
		Strength:     inst.Template.PrimaryMod.Strength,
		Agility:      inst.Template.PrimaryMod.Agility,
		Intelligence: inst.Template.PrimaryMod.Intelligence,
	}
}

func (inst *Instance) SecondaryModifier() attr.Secondary {
	if inst.Template.Kind != collab.EffectPassive {
		return attr.Secondary{}
	}
	return secondaryFromMap(inst.Template.SecondaryMod)
}

func (inst *Instance) ResourceModifier() attr.Caps {
	if inst.Template.Kind != collab.EffectPassive {
		return attr.Caps{}
	}
	return capsFromMap(inst.Template.ResourceMod)
}

func (inst *Instance) IsPassive() bool { return inst.Template.Kind == collab.EffectPassive }

// DamageTypeMatches, RemainingCapacity, AbsorptionRate, MaxAbsorptionPerHit,
// Absorb, and IsDepleted implement combat.ShieldEffect for a Shield-kind
// instance (spec.md §4.5 step 2); non-shield instances never reach the
// damage pipeline because ShieldView.ActiveShields filters by kind.
func (inst *Instance) DamageTypeMatches(damageType string) bool {
	return inst.Template.DamageTypeFilter == "" || inst.Template.DamageTypeFilter == damageType
}

func (inst *Instance) RemainingCapacity() int32 { return inst.RemainingAbsorption }

func (inst *Instance) AbsorptionRate() float64 {
	if inst.Template.AbsorptionRate == 0 {
		return 1.0
	}
	return inst.Template.AbsorptionRate
}

func (inst *Instance) MaxAbsorptionPerHit() int32 { return inst.Template.MaxAbsorptionPerHit }

func (inst *Instance) Absorb(amount int32) { inst.RemainingAbsorption -= amount }

func (inst *Instance) IsDepleted() bool { return inst.RemainingAbsorption <= 0 }

// ShieldView adapts a Mob's active effect set to combat.Shields/
// combat.ShieldRemover without combat ever importing effects (DESIGN.md
// "Open Question decisions" for internal/combat).
type ShieldView struct{ M *mob.Mob }

// ActiveShields implements combat.Shields, returning active shield
// instances in insertion order (spec.md §4.5 step 2).
func (s ShieldView) ActiveShields() []combat.ShieldEffect {
	var out []combat.ShieldEffect
	for _, e := range s.M.ActiveEffects() {
		inst, ok := e.(*Instance)
		if !ok || inst.Template.Kind != collab.EffectShield {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// RemoveShield implements combat.ShieldRemover: a depleted shield is simply
// gone, with no expire message (spec.md §4.6 "Shield: ... removed when
// absorption hits 0").
func (s ShieldView) RemoveShield(sh combat.ShieldEffect) {
	if inst, ok := sh.(*Instance); ok {
		RemoveEffect(s.M, inst, 0, false, nil)
	}
}

func secondaryFromMap(m map[string]int32) attr.Secondary {
	return attr.Secondary{
		AttackPower: m["attackPower"],
		Defense:     m["defense"],
		CritRate:    m["critRate"],
		Avoidance:   m["avoidance"],
		Accuracy:    m["accuracy"],
		SpellPower:  m["spellPower"],
		Resilience:  m["resilience"],
		Vitality:    m["vitality"],
		Wisdom:      m["wisdom"],
		Endurance:   m["endurance"],
		Spirit:      m["spirit"],
	}
}

func capsFromMap(m map[string]int32) attr.Caps {
	return attr.Caps{MaxHealth: m["maxHealth"], MaxMana: m["maxMana"]}
}
