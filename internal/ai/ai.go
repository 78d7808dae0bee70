// Package ai is the NPC-behavior driver sitting above the core: it turns
// room-entry events into aggression and threat-based target switching, and
// turns idle ticks into wandering and wimpy flight (spec.md §4.3/§4.5:
// "Aggression and threat-switching fire from the command/room-event
// layer"). The core packages below it stay mechanism-only; every policy
// decision an NPC makes lives here.
package ai

import (
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/combat"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/world"
)

// Env bundles the collaborators every behavior hook needs: the combat
// queue, the scheduler that hosts threat-decay timers, the injected RNG,
// and the leave-combat callback forwarded to combat.SetCombatTarget.
type Env struct {
	Queue         combat.Queue
	Sched         collab.Scheduler
	RNG           collab.RNG
	OnLeaveCombat func(*mob.Mob)
}

// SameRoom reports whether two mobs currently share a room.
func SameRoom(a, b *mob.Mob) bool {
	ar, aok := a.CurrentRoom()
	br, bok := b.CurrentRoom()
	return aok && bok && ar == br
}

// OnRoomEntry handles a mob arriving in a room: aggressive NPCs attack an
// entering player, and NPCs already holding threat against the arrival
// re-evaluate their target (spec.md §4.5 "Aggressive: on player entry,
// attack"; §4.3 "when a mob enters a room and is present in some resident
// mob's threat table, target-switching is recomputed").
func (e Env) OnRoomEntry(entering *mob.Mob, room *world.Room) {
	for _, n := range room.Contents() {
		resident, ok := n.(*mob.Mob)
		if !ok || resident == entering || resident.IsPlayerControlled() {
			continue
		}
		switch {
		case resident.Behaviors().Has(mob.Aggressive) &&
			entering.IsPlayerControlled() &&
			resident.CombatTarget() == nil:
			e.engage(resident, entering)
		default:
			if _, held := resident.ThreatTable()[entering.Base().ObjectID()]; held {
				e.reconsiderTarget(resident)
			}
		}
	}
}

func (e Env) engage(npc, target *mob.Mob) {
	if err := combat.SetCombatTarget(npc, target, e.Queue, e.OnLeaveCombat); err != nil {
		return
	}
	combat.AddThreat(npc, target, 1)
	combat.StartThreatDecay(npc, e.Sched, SameRoom)
}

// reconsiderTarget switches an NPC onto whoever in its threat table
// currently tops the list and shares its room.
func (e Env) reconsiderTarget(npc *mob.Mob) {
	next, ok := combat.GetHighestThreatTarget(npc, func(c *mob.Mob) bool {
		return SameRoom(npc, c)
	})
	if !ok || next == npc.CombatTarget() {
		return
	}
	combat.SetCombatTarget(npc, next, e.Queue, e.OnLeaveCombat)
}

// Wander gives one idle wander-behavior NPC a random step. A mob in
// combat, or one missing the behavior, stays put. leashRooms, when
// positive, bounds the Chebyshev drift from the mob's spawn room: a mob
// past the bound is walked home instead of wandering further (the reset
// leash; a zero bound means unleashed). Reports whether the mob moved.
func (e Env) Wander(m *mob.Mob, leashRooms int32) bool {
	if !m.Behaviors().Has(mob.Wander) || m.CombatTarget() != nil {
		return false
	}
	room, ok := m.CurrentRoom()
	if !ok {
		return false
	}

	if leashRooms > 0 && m.SpawnRoomRef() != "" {
		if home, drifted := leashExceeded(m, room, leashRooms); drifted {
			m.ReturnToSpawn()
			object.Move(m, home)
			return true
		}
	}

	if e.RNG == nil {
		return false
	}
	dir := direction.All[e.RNG.Intn(len(direction.All))]
	if !room.CanExit(m, dir) {
		return false
	}
	return m.Step(m, dir, world.StepScripts{})
}

// leashExceeded resolves the mob's spawn room in its current dungeon and
// reports whether the mob has drifted past the leash bound.
func leashExceeded(m *mob.Mob, room *world.Room, leashRooms int32) (*world.Room, bool) {
	d, ok := room.Dungeon().(*world.Dungeon)
	if !ok {
		return nil, false
	}
	homeID, homeCoord, err := world.ParseRoomRef(m.SpawnRoomRef())
	if err != nil || homeID != d.ID() {
		return nil, false
	}
	home, ok := d.RoomAt(homeCoord)
	if !ok {
		return nil, false
	}
	if chebyshev(room.Coordinates, homeCoord) <= leashRooms {
		return nil, false
	}
	return home, true
}

func chebyshev(a, b geo.Coordinate) int32 {
	dx := abs32(a.X - b.X)
	dy := abs32(a.Y - b.Y)
	dz := abs32(a.Z - b.Z)
	max := dx
	if dy > max {
		max = dy
	}
	if dz > max {
		max = dz
	}
	return max
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// FleeCheck runs the wimpy check for one combat-queue member and, when the
// mob breaks, drops it out of combat and steps it in a random open
// direction (spec.md §4.5 "Wimpy: at <=25% HP, random chance to flee
// combat"). Reports whether the mob fled.
func (e Env) FleeCheck(m *mob.Mob) bool {
	if !combat.ShouldFlee(m, e.RNG) {
		return false
	}
	if err := combat.SetCombatTarget(m, nil, e.Queue, e.OnLeaveCombat); err != nil {
		return false
	}
	if room, ok := m.CurrentRoom(); ok && e.RNG != nil {
		dir := direction.All[e.RNG.Intn(len(direction.All))]
		if room.CanExit(m, dir) {
			m.Step(m, dir, world.StepScripts{})
		}
	}
	return true
}
