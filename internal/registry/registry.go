// Package registry implements the process-wide lookup tables of spec.md C10:
// dungeons by id, the global room-link set, and the mob sets that the
// external scheduler polls each tick (combat queue, regeneration,
// effects, wandering NPCs). Per spec.md §5 ("the core never takes locks
// because it assumes only one actor at a time") every table here is a plain
// map guarded by nothing — concurrency is pushed to the single world-tick
// execution domain, same as every other package in this module (see
// DESIGN.md "Concurrency model adaptation"). This mirrors the shape of the
// teacher's sync.Map-backed AggroList (internal/model/aggro.go) generalized
// from one NPC's hate table to the module's process-wide registries.
package registry

import (
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/world"
)

// DungeonRegistry implements world.IDRegistry: id -> *world.Dungeon,
// assigned via Dungeon.SetID (spec.md §4.8).
type DungeonRegistry struct {
	dungeons map[string]*world.Dungeon
}

// NewDungeonRegistry constructs an empty registry.
func NewDungeonRegistry() *DungeonRegistry {
	return &DungeonRegistry{dungeons: map[string]*world.Dungeon{}}
}

// RegisterDungeon implements world.IDRegistry.
func (r *DungeonRegistry) RegisterDungeon(id string, d *world.Dungeon) { r.dungeons[id] = d }

// UnregisterDungeon implements world.IDRegistry.
func (r *DungeonRegistry) UnregisterDungeon(id string) { delete(r.dungeons, id) }

// Get looks up a dungeon by its registered id.
func (r *DungeonRegistry) Get(id string) (*world.Dungeon, bool) {
	d, ok := r.dungeons[id]
	return d, ok
}

// Snapshot returns every registered dungeon (spec.md §4.8: "snapshot
// iteration (no concurrent mutation during iteration)").
func (r *DungeonRegistry) Snapshot() []*world.Dungeon {
	out := make([]*world.Dungeon, 0, len(r.dungeons))
	for _, d := range r.dungeons {
		out = append(out, d)
	}
	return out
}

// Len reports how many dungeons are currently registered.
func (r *DungeonRegistry) Len() int { return len(r.dungeons) }

// RoomLinkRegistry implements world.LinkRegistry: the global set of live
// RoomLinks, for lookup, iteration on dungeon destruction, and persistence
// (spec.md §4.8).
type RoomLinkRegistry struct {
	links map[*world.RoomLink]struct{}
}

// NewRoomLinkRegistry constructs an empty registry.
func NewRoomLinkRegistry() *RoomLinkRegistry {
	return &RoomLinkRegistry{links: map[*world.RoomLink]struct{}{}}
}

// AddLink implements world.LinkRegistry.
func (r *RoomLinkRegistry) AddLink(l *world.RoomLink) { r.links[l] = struct{}{} }

// RemoveLink implements world.LinkRegistry. Idempotent: removing a link not
// present is a no-op (spec.md §8 idempotence: "Repeated link.Remove() is
// safe").
func (r *RoomLinkRegistry) RemoveLink(l *world.RoomLink) { delete(r.links, l) }

// Snapshot returns every currently-registered link.
func (r *RoomLinkRegistry) Snapshot() []*world.RoomLink {
	out := make([]*world.RoomLink, 0, len(r.links))
	for l := range r.links {
		out = append(out, l)
	}
	return out
}

// Len reports how many links are currently registered.
func (r *RoomLinkRegistry) Len() int { return len(r.links) }

// MobSet is a process-wide set of mobs keyed by object id, the shared shape
// behind CombatQueue, RegenerationSet, EffectsSet, and WanderingMobs (spec.md
// §4.8: each "expose[s] Add, Remove, and snapshot iteration"). Add is
// idempotent (spec.md §8: "Repeated reg.Add(x) keeps registry cardinality at
// 1 for x").
type MobSet struct {
	mobs map[int64]*mob.Mob
}

// NewMobSet constructs an empty set.
func NewMobSet() *MobSet { return &MobSet{mobs: map[int64]*mob.Mob{}} }

// Add inserts m, idempotently.
func (s *MobSet) Add(m *mob.Mob) { s.mobs[m.Base().ObjectID()] = m }

// Remove deletes m if present.
func (s *MobSet) Remove(m *mob.Mob) { delete(s.mobs, m.Base().ObjectID()) }

// Contains reports whether m is currently a member.
func (s *MobSet) Contains(m *mob.Mob) bool {
	_, ok := s.mobs[m.Base().ObjectID()]
	return ok
}

// Snapshot returns every current member. Safe to range over while the
// caller separately mutates the set via a different MobSet method call
// (spec.md §4.8: "no concurrent mutation during iteration" — the contract is
// that the caller doesn't mutate the collection being iterated, which every
// registry consumer in this module respects by building the snapshot before
// looping over a regeneration/threat/effect tick).
func (s *MobSet) Snapshot() []*mob.Mob {
	out := make([]*mob.Mob, 0, len(s.mobs))
	for _, m := range s.mobs {
		out = append(out, m)
	}
	return out
}

// Len reports the set's cardinality.
func (s *MobSet) Len() int { return len(s.mobs) }

// CombatQueue holds every mob with a non-nil combat target, maintained by
// internal/combat.SetCombatTarget (spec.md §4.8). Its Add/Remove signatures
// already match combat.Queue, so *CombatQueue can be passed directly
// wherever that interface is expected.
type CombatQueue struct{ *MobSet }

// NewCombatQueue constructs an empty combat queue.
func NewCombatQueue() *CombatQueue { return &CombatQueue{MobSet: NewMobSet()} }

// RegenerationSet holds mobs with any resource below max, polled by the
// external regen tick (spec.md §4.8).
type RegenerationSet struct{ *MobSet }

// NewRegenerationSet constructs an empty regeneration set.
func NewRegenerationSet() *RegenerationSet { return &RegenerationSet{MobSet: NewMobSet()} }

// EffectsSet holds mobs with >=1 active effect whose timers must be
// serviced (spec.md §4.8).
type EffectsSet struct{ *MobSet }

// NewEffectsSet constructs an empty effects set.
func NewEffectsSet() *EffectsSet { return &EffectsSet{MobSet: NewMobSet()} }

// WanderingMobs holds NPCs with the wander behavior (spec.md §4.8).
type WanderingMobs struct{ *MobSet }

// NewWanderingMobs constructs an empty wandering-mob set.
func NewWanderingMobs() *WanderingMobs { return &WanderingMobs{MobSet: NewMobSet()} }

// World aggregates every process-wide registry (spec.md §9 "Model as a World
// value passed into constructors/methods that need registry lookup; the
// 'process-wide' framing in the source is a convenience, not a
// requirement"). cmd/mudsim constructs exactly one of these and threads it
// through every collaborator that needs registry access.
type World struct {
	Dungeons     *DungeonRegistry
	RoomLinks    *RoomLinkRegistry
	CombatQueue  *CombatQueue
	Regeneration *RegenerationSet
	Effects      *EffectsSet
	Wandering    *WanderingMobs
}

// NewWorld constructs a World with every registry freshly initialized.
func NewWorld() *World {
	return &World{
		Dungeons:     NewDungeonRegistry(),
		RoomLinks:    NewRoomLinkRegistry(),
		CombatQueue:  NewCombatQueue(),
		Regeneration: NewRegenerationSet(),
		Effects:      NewEffectsSet(),
		Wandering:    NewWanderingMobs(),
	}
}
