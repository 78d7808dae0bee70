// Package combat implements the damage pipeline, threat table, and
// combat-target state machine (spec.md C7). It depends on mob and object
// but never on effects — effects calls back into combat through an
// injected interface to avoid a combat<->effects import cycle, mirroring
// the teacher's own callback-injection idiom in
// internal/game/combat/manager.go and internal/ai/attackable_ai.go.
package combat

import (
	"math"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/simerr"
)

// ThreatDecayIntervalMs is the fixed threat-expiration cycle (spec.md
// §4.5: "fires on a fixed interval (10 seconds)").
const ThreatDecayIntervalMs = 10_000

// ThreatDecayFactor and ThreatFloor implement the exact decay scenario in
// spec.md §8 #4: "scale value by 0.67 (floor). Drop entries falling below
// 100."
const (
	ThreatDecayFactor = 0.67
	ThreatFloor       = 100
)

// Queue is the combat-queue side effect SetCombatTarget must drive
// (spec.md §4.5, §4.8 "CombatQueue: mobs with non-nil combatTarget").
// Defined here so combat never imports the registry package; registry
// imports combat-adjacent types only through mob.
type Queue interface {
	Add(m *mob.Mob)
	Remove(m *mob.Mob)
}

// ShieldEffect is the minimal shape of an active shield instance the
// damage pipeline needs (spec.md §4.5 step 2). internal/effects' shield
// type implements this; combat never imports effects, so this interface
// is the seam.
type ShieldEffect interface {
	DamageTypeMatches(damageType string) bool
	RemainingCapacity() int32
	AbsorptionRate() float64
	MaxAbsorptionPerHit() int32
	Absorb(amount int32)
	IsDepleted() bool
}

// Shields is the optional hook a Mob's effect set exposes to the damage
// pipeline, in insertion order (spec.md §4.5 step 2: "iterate active
// shield effects in insertion order").
type Shields interface {
	ActiveShields() []ShieldEffect
}

// ShieldRemover is an optional capability of a Shields implementation that
// lets the damage pipeline drop a shield the instant it bottoms out (spec.md
// §4.6 Shield: "removed when absorption hits 0"). internal/effects'
// ShieldView implements this; combat never imports effects, so a Shields
// value that doesn't implement it (e.g. a test double) simply keeps the
// depleted shield around with zero remaining capacity, which is harmless —
// DamageTypeMatches checks still pass but tryAbsorb always computes to 0.
type ShieldRemover interface {
	RemoveShield(ShieldEffect)
}

// DeathHandler is invoked when a mob's health reaches 0 (spec.md §4.5
// step 5: "invoke the external death handler").
type DeathHandler func(target *mob.Mob, killer *mob.Mob)

// AbsorbMessage is how the pipeline narrates a shield absorbing damage
// (spec.md §4.5 step 2: 'emit a "shield absorbs X" act message').
type AbsorbMessage func(target *mob.Mob, amount int32)

// SetCombatTarget implements the combat-target setter semantics of
// spec.md §4.5: forbids self-targeting, and drives combat-queue/threat
// bookkeeping purely off the in-combat/out-of-combat transition.
func SetCombatTarget(m *mob.Mob, target *mob.Mob, q Queue, onLeaveCombat func(*mob.Mob)) error {
	if target == m {
		return simerr.ErrSelfTarget
	}
	wasInCombat := m.CombatTarget() != nil
	m.SetCombatTargetRaw(target)
	nowInCombat := target != nil

	switch {
	case !wasInCombat && nowInCombat:
		if q != nil {
			q.Add(m)
		}
		if !m.IsPlayerControlled() {
			AddThreat(m, target, 0)
		}
	case wasInCombat && !nowInCombat:
		if q != nil {
			q.Remove(m)
		}
		if !m.IsPlayerControlled() && onLeaveCombat != nil {
			onLeaveCombat(m)
		}
	}
	return nil
}

// LeaveCombatSwitchTarget implements the "may switch to the highest-
// threat target still reachable" half of spec.md §4.5's combat-target
// setter description, for use as the onLeaveCombat callback.
func LeaveCombatSwitchTarget(m *mob.Mob, q Queue, reachable func(*mob.Mob) bool, onLeaveCombat func(*mob.Mob)) {
	next, ok := GetHighestThreatTarget(m, reachable)
	if !ok {
		return
	}
	SetCombatTarget(m, next, q, onLeaveCombat)
}

// AddThreat lazily initializes the table, adds amount to attacker's
// entry (creating it if absent), clears shouldExpire, and runs
// ProcessThreatSwitching (spec.md §4.5). It does not start the decay
// timer; StartThreatDecay does.
func AddThreat(m *mob.Mob, attacker *mob.Mob, amount int64) {
	table := m.ThreatTable()
	entry, ok := table[attacker.Base().ObjectID()]
	if !ok {
		entry = &mob.ThreatEntry{Attacker: attacker}
		table[attacker.Base().ObjectID()] = entry
	}
	entry.Hate += amount
	entry.ShouldExpire = false

	// The decay cycle itself needs a scheduler this package never holds;
	// StartThreatDecay is the companion call the driving layer makes
	// whenever it routes damage or aggression at an NPC.
	ProcessThreatSwitching(m)
}

// StartThreatDecay registers the 10-second decay timer with sched and
// records its handle (and cancel hook, used by mob teardown) on m.
// Idempotent while a timer is already running.
func StartThreatDecay(m *mob.Mob, sched collab.Scheduler, sameRoom func(a, b *mob.Mob) bool) {
	if m.ThreatTimer() != nil || sched == nil {
		return
	}
	handle := sched.SetAbsoluteInterval(func(nowMs int64) {
		ProcessThreatExpiration(m, sched, sameRoom)
	}, ThreatDecayIntervalMs)
	m.SetThreatTimer(handle)
	m.SetThreatStopper(func() { sched.ClearInterval(handle) })
}

// ProcessThreatExpiration runs one decay cycle (spec.md §4.5, and the
// literal worked example in spec.md §8 #4).
func ProcessThreatExpiration(m *mob.Mob, sched collab.Scheduler, sameRoom func(a, b *mob.Mob) bool) {
	table := m.ThreatTable()
	for oid, entry := range table {
		if entry.Attacker.Base().Dungeon() == nil {
			delete(table, oid)
			continue
		}
		if entry.Attacker == m.CombatTarget() {
			continue
		}
		if sameRoom != nil && sameRoom(m, entry.Attacker) {
			continue
		}
		if !entry.ShouldExpire {
			entry.ShouldExpire = true
			continue
		}
		entry.Hate = int64(math.Floor(float64(entry.Hate) * ThreatDecayFactor))
		if entry.Hate < ThreatFloor {
			delete(table, oid)
		}
	}
	if len(table) == 0 && sched != nil {
		sched.ClearInterval(m.ThreatTimer())
		m.SetThreatTimer(nil)
		m.SetThreatStopper(nil)
	}
}

// GetHighestThreatTarget scans the table linearly for the highest-hate
// entry whose attacker satisfies reachable (spec.md §4.5).
func GetHighestThreatTarget(m *mob.Mob, reachable func(*mob.Mob) bool) (*mob.Mob, bool) {
	var best *mob.Mob
	var bestHate int64 = -1
	for _, entry := range m.ThreatTable() {
		if reachable != nil && !reachable(entry.Attacker) {
			continue
		}
		if entry.Hate > bestHate {
			best = entry.Attacker
			bestHate = entry.Hate
		}
	}
	return best, best != nil
}

// ProcessThreatSwitching is a no-op: it changes no state and never switches
// m's combat target. Switching goes through LeaveCombatSwitchTarget and
// GetHighestThreatTarget, whose caller-supplied reachable callback makes
// the room co-location check this package cannot make without importing
// world.
func ProcessThreatSwitching(m *mob.Mob) {
	// The actual switch decision (spec.md §4.5 "ProcessThreatSwitching")
	// is driven by the room-event layer via LeaveCombatSwitchTarget and
	// GetHighestThreatTarget; this hook exists so AddThreat's call site
	// matches the spec's described sequence even though no additional
	// state needs to change here beyond what AddThreat already did.
}

// FactionAllies returns the room-scoped set of mobs eligible for the
// faction-assist call (SPEC_FULL.md §C.1): the mobs sharing target's room.
// combat never imports world, so the room lookup lives on the caller's
// side; this is the same shape as coLocated. callFaction itself skips
// target, player-controlled mobs, and mobs of another faction.
type FactionAllies func(target *mob.Mob) []*mob.Mob

// Damage implements the full damage pipeline (spec.md §4.5).
func Damage(attacker, target *mob.Mob, amount int32, damageType string, shields Shields, q Queue, onLeaveCombat func(*mob.Mob), coLocated func(a, b *mob.Mob) bool, absorbMsg AbsorbMessage, death DeathHandler, allies FactionAllies) {
	if target.Behaviors().Has(mob.Shopkeeper) {
		return
	}

	remaining := amount
	if shields != nil {
		for _, sh := range shields.ActiveShields() {
			if remaining <= 0 {
				break
			}
			if !sh.DamageTypeMatches(damageType) {
				continue
			}
			tryAbsorb := int32(math.Floor(float64(remaining) * sh.AbsorptionRate()))
			limit := sh.RemainingCapacity()
			if maxHit := sh.MaxAbsorptionPerHit(); maxHit > 0 && maxHit < limit {
				limit = maxHit
			}
			if tryAbsorb > limit {
				tryAbsorb = limit
			}
			if tryAbsorb > remaining {
				tryAbsorb = remaining
			}
			if tryAbsorb <= 0 {
				continue
			}
			sh.Absorb(tryAbsorb)
			remaining -= tryAbsorb
			if absorbMsg != nil {
				absorbMsg(target, tryAbsorb)
			}
			if sh.IsDepleted() {
				if remover, ok := shields.(ShieldRemover); ok {
					remover.RemoveShield(sh)
				}
			}
		}
	}

	target.ReduceHealth(remaining)

	if !target.IsPlayerControlled() {
		threatAmount := amount
		if threatAmount < 1 {
			threatAmount = 1
		}
		AddThreat(target, attacker, int64(threatAmount))
		callFaction(target, attacker, allies)
	} else if target.CombatTarget() == nil && coLocated != nil && coLocated(attacker, target) {
		SetCombatTarget(target, attacker, q, onLeaveCombat)
	}

	if target.Health() <= 0 && death != nil {
		death(target, attacker)
	}
}

// callFaction implements the faction-assist-call supplement
// (SPEC_FULL.md §C.1, teacher's AttackableAI.callFaction): every room-
// mate sharing target's non-empty FactionID gets a minimal threat entry
// against the same attacker, so a pulled mob isn't fighting alone.
func callFaction(target, attacker *mob.Mob, allies FactionAllies) {
	if allies == nil || target.FactionID() == "" {
		return
	}
	for _, ally := range allies(target) {
		if ally == target || ally.IsPlayerControlled() {
			continue
		}
		if ally.FactionID() != target.FactionID() {
			continue
		}
		AddThreat(ally, attacker, 1)
	}
}

// ShouldFlee implements the Wimpy behavior's flee check: at <=25% health,
// rng decides whether the mob flees combat (spec.md §4.5).
func ShouldFlee(m *mob.Mob, rng collab.RNG) bool {
	if !m.Behaviors().Has(mob.Wimpy) {
		return false
	}
	if m.MaxHealth() == 0 || float64(m.Health())/float64(m.MaxHealth()) > 0.25 {
		return false
	}
	if rng == nil {
		return false
	}
	return rng.Intn(100) < 50
}
