// Package reset implements the deterministic re-spawn system of spec.md C9:
// template+room-ref tuples with min/max counts, spawn-tracking back-
// references, and dungeon-level orchestration. Grounded on the teacher's
// internal/spawn/manager.go (DoSpawn's load-template -> mint-oid -> place ->
// track-count sequence, generalized from a sync.Map/atomic-counter-backed
// spawn table to a single Reset value whose spawned list is the room-
// repopulation identity tracker spec.md §4.7 describes) and
// internal/spawn/respawn.go's min/max bookkeeping.
package reset

import (
	"log/slog"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/mob"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/simerr"
	"github.com/brackenmoor/mudcore/internal/world"
)

// GlobalTemplates is the "then global" half of spec.md §4.7 step 2's
// template resolution fallback ("local dungeon first, then global").
// internal/worlddata's Catalog implements this; reset never
// assumes anything about where the global table lives.
type GlobalTemplates interface {
	ResolveTemplate(id string) (*object.Template, error)
}

// Reset is an immutable spawn rule plus its mutable live-spawn tracking list
// (spec.md §3 "Reset"). A Reset is always attached to exactly one Dungeon via
// that dungeon's Resets slice.
type Reset struct {
	TemplateID string
	RoomRef    string
	MinCount   int
	MaxCount   int
	Equipped   []string
	Inventory  []string

	// LeashRooms bounds how far (Chebyshev distance in room coordinates
	// from RoomRef) a wander-behavior spawn may drift before the external
	// AI driver walks it back via Mob.ReturnToSpawn (SPEC_FULL.md §C.2,
	// grounded on the teacher's AttackableAI.maxDriftRange). Zero means
	// unleashed.
	LeashRooms int32

	Factory collab.Factory
	Global  GlobalTemplates
	Logger  *slog.Logger

	spawned []object.Node
}

// New constructs a Reset. factory and global may be nil in tests that
// exercise Execute's guard clauses directly.
func New(templateID, roomRef string, minCount, maxCount int, equipped, inventory []string, factory collab.Factory, global GlobalTemplates) *Reset {
	return &Reset{
		TemplateID: templateID,
		RoomRef:    roomRef,
		MinCount:   minCount,
		MaxCount:   maxCount,
		Equipped:   equipped,
		Inventory:  inventory,
		Factory:    factory,
		Global:     global,
	}
}

// Untrack implements object.ResetTracker: called by the containment graph
// the moment a spawned object's location changes (Item family) or its
// dungeon changes (everything else), clearing the tracking link on both
// sides at once (spec.md §3 invariant 5).
func (r *Reset) Untrack(n object.Node) {
	for i, s := range r.spawned {
		if s == n {
			r.spawned = append(r.spawned[:i], r.spawned[i+1:]...)
			return
		}
	}
}

// Spawned returns a snapshot of the currently tracked live spawns.
func (r *Reset) Spawned() []object.Node {
	out := make([]object.Node, len(r.spawned))
	copy(out, r.spawned)
	return out
}

func (r *Reset) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Execute implements world.Resetter (spec.md §4.7). It resolves the target
// room and template, counts live spawns, and tops the room back up to
// MinCount (never exceeding MaxCount), equipping and provisioning the
// inventory of any newly spawned Mob.
func (r *Reset) Execute(d *world.Dungeon) int {
	room, ok := resolveRoom(d, r.RoomRef)
	if !ok {
		r.logger().Warn("reset: unknown room", "roomRef", r.RoomRef, "templateID", r.TemplateID)
		return 0
	}

	tmpl, err := r.resolveTemplate(d)
	if err != nil {
		r.logger().Warn("reset: unknown template", "templateID", r.TemplateID)
		return 0
	}

	existing := len(r.spawned)
	if existing >= r.MaxCount {
		return 0
	}
	toSpawn := r.MinCount - existing
	if headroom := r.MaxCount - existing; toSpawn > headroom {
		toSpawn = headroom
	}
	if toSpawn <= 0 {
		return 0
	}
	if r.Factory == nil {
		r.logger().Warn("reset: no factory configured", "templateID", r.TemplateID)
		return 0
	}

	spawnedCount := 0
	for i := 0; i < toSpawn; i++ {
		n := r.Factory.CreateFromTemplate(tmpl, 0)
		if n == nil {
			continue
		}
		n.Base().SetSpawnedByReset(r)
		r.spawned = append(r.spawned, n)
		room.Add(room, n)

		if m, ok := n.(*mob.Mob); ok {
			m.SetSpawnRoomRef(r.RoomRef)
			r.provisionMob(d, m)
		}
		spawnedCount++
	}
	return spawnedCount
}

func (r *Reset) provisionMob(d *world.Dungeon, m *mob.Mob) {
	for _, equipID := range r.Equipped {
		tmpl, err := resolveTemplateID(d, r.Global, equipID)
		if err != nil {
			r.logger().Warn("reset: unknown equipped template", "templateID", equipID)
			continue
		}
		if !isEquipmentType(tmpl.Type) {
			r.logger().Warn("reset: template not valid equipment", "templateID", equipID, "type", tmpl.Type)
			continue
		}
		n := r.Factory.CreateFromTemplate(tmpl, 0)
		if n == nil {
			continue
		}
		eq, ok := n.(mob.Equippable)
		if !ok {
			r.logger().Warn("reset: spawned equipment does not implement Equippable", "templateID", equipID)
			continue
		}
		m.Equip(eq)
	}
	for _, invID := range r.Inventory {
		tmpl, err := resolveTemplateID(d, r.Global, invID)
		if err != nil {
			r.logger().Warn("reset: unknown inventory template", "templateID", invID)
			continue
		}
		n := r.Factory.CreateFromTemplate(tmpl, 0)
		if n == nil {
			continue
		}
		object.Move(n, m)
	}
}

func (r *Reset) resolveTemplate(d *world.Dungeon) (*object.Template, error) {
	return resolveTemplateID(d, r.Global, r.TemplateID)
}

func resolveTemplateID(d *world.Dungeon, global GlobalTemplates, id string) (*object.Template, error) {
	if t, err := d.ResolveTemplate(id); err == nil {
		return t, nil
	}
	if global != nil {
		if t, err := global.ResolveTemplate(id); err == nil {
			return t, nil
		}
	}
	return nil, simerr.ErrUnknownTemplate
}

func resolveRoom(d *world.Dungeon, ref string) (*world.Room, bool) {
	dungeonID, coord, err := world.ParseRoomRef(ref)
	if err != nil || dungeonID != d.ID() {
		return nil, false
	}
	return d.RoomAt(coord)
}

func isEquipmentType(t string) bool {
	switch t {
	case "equipment", "armor", "weapon":
		return true
	}
	return false
}
