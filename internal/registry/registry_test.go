package registry

import (
	"testing"

	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/world"
)

func TestDungeonRegistryRegisterUnregister(t *testing.T) {
	reg := NewDungeonRegistry()
	d := world.NewDungeon(geo.MapDimensions{Width: 1, Height: 1, Layers: 1})

	d.SetID("zone1", reg)
	got, ok := reg.Get("zone1")
	if !ok || got != d {
		t.Fatalf("expected zone1 to resolve to the registered dungeon")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected registry length 1, got %d", reg.Len())
	}

	d.SetID("", reg)
	if _, ok := reg.Get("zone1"); ok {
		t.Fatalf("expected zone1 to be unregistered after clearing id")
	}
	if reg.Len() != 0 {
		t.Fatalf("expected registry length 0 after unregister, got %d", reg.Len())
	}
}

func TestMobSetAddIsIdempotent(t *testing.T) {
	set := NewMobSet()
	m := mob.New(1, "npc", "npc", 10, "", "", 1, nil)

	set.Add(m)
	set.Add(m)
	if set.Len() != 1 {
		t.Fatalf("expected idempotent add to keep cardinality 1, got %d", set.Len())
	}
	if !set.Contains(m) {
		t.Fatalf("expected set to contain m")
	}

	set.Remove(m)
	if set.Contains(m) {
		t.Fatalf("expected m removed")
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set after removal, got %d", set.Len())
	}
}

func TestCombatQueueSatisfiesQueueInterface(t *testing.T) {
	q := NewCombatQueue()
	m := mob.New(1, "npc", "npc", 10, "", "", 1, nil)

	q.Add(m)
	if !q.Contains(m) {
		t.Fatalf("expected combat queue to contain added mob")
	}
	snap := q.Snapshot()
	if len(snap) != 1 || snap[0] != m {
		t.Fatalf("expected snapshot to contain exactly the added mob")
	}
}

func TestRoomLinkRegistryAddRemove(t *testing.T) {
	reg := NewRoomLinkRegistry()
	d := world.NewDungeon(geo.MapDimensions{Width: 2, Height: 1, Layers: 1})
	a, _ := d.CreateRoom(1, geo.Coordinate{X: 0})
	b, _ := d.CreateRoom(2, geo.Coordinate{X: 1})

	link := world.NewRoomLink(reg, a, direction.North, b, false)
	if reg.Len() != 1 {
		t.Fatalf("expected 1 registered link, got %d", reg.Len())
	}

	link.Remove(reg)
	if reg.Len() != 0 {
		t.Fatalf("expected 0 links after removal, got %d", reg.Len())
	}
	// Idempotent per spec.md §8: a repeated Remove is a no-op.
	link.Remove(reg)
	if reg.Len() != 0 {
		t.Fatalf("expected repeated removal to stay a no-op")
	}
}

func TestNewWorldInitializesEveryRegistry(t *testing.T) {
	w := NewWorld()
	if w.Dungeons == nil || w.RoomLinks == nil || w.CombatQueue == nil ||
		w.Regeneration == nil || w.Effects == nil || w.Wandering == nil {
		t.Fatalf("expected every registry field to be initialized")
	}
}
