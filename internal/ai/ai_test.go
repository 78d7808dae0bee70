package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brackenmoor/mudcore/internal/attr"
	"github.com/brackenmoor/mudcore/internal/combat"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/world"
)

type fakeCharacter struct{ m *mob.Mob }

func (c *fakeCharacter) BoundMob() *mob.Mob { return c.m }

type fakeQueue struct{ members map[int64]*mob.Mob }

func newFakeQueue() *fakeQueue { return &fakeQueue{members: map[int64]*mob.Mob{}} }

func (q *fakeQueue) Add(m *mob.Mob)    { q.members[m.Base().ObjectID()] = m }
func (q *fakeQueue) Remove(m *mob.Mob) { delete(q.members, m.Base().ObjectID()) }

type fixedRNG struct{ v int }

func (f fixedRNG) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func newWorldWithRooms(t *testing.T) *world.Dungeon {
	t.Helper()
	d := world.NewDungeon(geo.MapDimensions{Width: 3, Height: 3, Layers: 1})
	oid := int64(1000)
	d.GenerateRooms(func() int64 { oid++; return oid }, direction.DefaultExits)
	return d
}

func newNPC(oid int64, name string) *mob.Mob {
	m := mob.New(oid, name, name, 10, "", "", 1, nil)
	m.AddRuntimeResourceBonus(attr.Caps{MaxHealth: 100})
	m.Recompute(nil, nil, true, -1, -1)
	return m
}

func newPlayer(oid int64, name string) *mob.Mob {
	m := newNPC(oid, name)
	m.SetCharacter(&fakeCharacter{m: m})
	return m
}

func TestAggressiveNPCAttacksEnteringPlayer(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "a guard")
	npc.SetBehaviors(mob.Aggressive)
	room.Add(room, npc)

	player := newPlayer(2, "an adventurer")
	room.Add(room, player)

	q := newFakeQueue()
	env := Env{Queue: q}
	env.OnRoomEntry(player, room)

	require.Equal(t, player, npc.CombatTarget(), "aggressive NPC engages the arrival")
	require.Contains(t, q.members, npc.Base().ObjectID())
	require.Contains(t, npc.ThreatTable(), player.Base().ObjectID())
}

func TestAggressiveNPCIgnoresEnteringNPC(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "a guard")
	npc.SetBehaviors(mob.Aggressive)
	room.Add(room, npc)

	other := newNPC(2, "a rat")
	room.Add(room, other)

	env := Env{Queue: newFakeQueue()}
	env.OnRoomEntry(other, room)

	require.Nil(t, npc.CombatTarget(), "aggression only fires on player entry")
}

func TestRoomEntryTriggersThreatSwitch(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "an ogre")
	room.Add(room, npc)

	current := newPlayer(2, "the tank")
	room.Add(room, current)
	arrival := newPlayer(3, "the healer")

	q := newFakeQueue()
	combat.SetCombatTarget(npc, current, q, nil)
	npc.ThreatTable()[current.Base().ObjectID()] = &mob.ThreatEntry{Attacker: current, Hate: 100}
	npc.ThreatTable()[arrival.Base().ObjectID()] = &mob.ThreatEntry{Attacker: arrival, Hate: 900}

	room.Add(room, arrival)
	env := Env{Queue: q}
	env.OnRoomEntry(arrival, room)

	require.Equal(t, arrival, npc.CombatTarget(), "NPC switches to the higher-threat arrival")
}

func TestWanderStepsIdleMob(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "a rat")
	npc.SetBehaviors(mob.Wander)
	room.Add(room, npc)

	env := Env{RNG: fixedRNG{v: 0}} // direction.All[0] == North
	require.True(t, env.Wander(npc, 0))

	north, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 0})
	require.True(t, north.Contains(npc))
}

func TestWanderRefusesInCombatOrWithoutBehavior(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "a rat")
	room.Add(room, npc)
	env := Env{RNG: fixedRNG{v: 0}}
	require.False(t, env.Wander(npc, 0), "no wander behavior, no movement")

	npc.SetBehaviors(mob.Wander)
	target := newNPC(2, "prey")
	combat.SetCombatTarget(npc, target, nil, nil)
	require.False(t, env.Wander(npc, 0), "mobs in combat stand their ground")
}

func TestWanderLeashWalksDriftedMobHome(t *testing.T) {
	d := newWorldWithRooms(t)
	d.SetID("wilds", nil)
	home, _ := d.RoomAt(geo.Coordinate{X: 0, Y: 0})
	far, _ := d.RoomAt(geo.Coordinate{X: 2, Y: 2})

	npc := newNPC(1, "a boar")
	npc.SetBehaviors(mob.Wander)
	npc.SetSpawnRoomRef(world.FormatRoomRef("wilds", home.Coordinates))
	far.Add(far, npc)

	env := Env{RNG: fixedRNG{v: 0}}
	require.True(t, env.Wander(npc, 1), "drift of 2 exceeds a leash of 1")
	require.True(t, home.Contains(npc), "leashed mob returns to its spawn room")
}

func TestFleeCheckBreaksCombatAndMoves(t *testing.T) {
	d := newWorldWithRooms(t)
	room, _ := d.RoomAt(geo.Coordinate{X: 1, Y: 1})

	npc := newNPC(1, "a coward")
	npc.SetBehaviors(mob.Wimpy)
	room.Add(room, npc)
	enemy := newPlayer(2, "a brute")
	room.Add(room, enemy)

	q := newFakeQueue()
	combat.SetCombatTarget(npc, enemy, q, nil)
	npc.ReduceHealth(npc.MaxHealth() * 4 / 5)

	env := Env{Queue: q, RNG: fixedRNG{v: 0}}
	require.True(t, env.FleeCheck(npc))
	require.Nil(t, npc.CombatTarget())
	require.NotContains(t, q.members, npc.Base().ObjectID())
	require.False(t, room.Contains(npc), "fled mob left the room")
}
