// Package object implements the containment graph (spec.md §4.1): the
// Object base entity, its parent/child links, weight propagation, keyword
// matching, and the Item/Equipment/Armor/Weapon/Currency/Prop family built
// on top of it. Rooms, movable actors, and mobs live in sibling packages
// but embed *Object to get all of this for free — the same composition
// the teacher uses for WorldObject -> Character -> Player/Npc
// (internal/model/worldobject.go, internal/model/character.go).
package object

import "strings"

// Node is anything that participates in the containment graph. Every
// concrete entity type (Item, Room, Movable, Mob, ...) implements it by
// embedding *Object and is reachable back to its own wrapper value through
// Base — Go has no covariant "this", so callers that need the concrete
// type recover it with a type switch/assertion on the Node they hold.
type Node interface {
	Base() *Object
}

// DungeonRef is the minimal surface a Dungeon must expose so that objects
// can join/leave its flat contents registry without this package importing
// the world package (which embeds *Object and would create a cycle).
type DungeonRef interface {
	ID() string
	RegisterObject(n Node)
	UnregisterObject(n Node)
}

// ResetTracker is the minimal surface a Reset must expose so that an
// object can clear its own spawnedByReset back-reference (spec.md §3
// invariant 5) without this package importing the reset package.
type ResetTracker interface {
	Untrack(n Node)
}

// Object is the base entity embedded by every concrete world type.
type Object struct {
	oid     int64
	keyword string
	display string

	description     *string
	roomDescription *string
	mapText         *string
	mapColor        *string

	templateID *string
	baseWeight float64
	curWeight  float64
	value      int64

	parent   Node
	children []Node

	dungeon        DungeonRef
	spawnedByReset ResetTracker

	// isItemKind marks the Item family (Item/Equipment/Armor/Weapon/
	// Currency); only these clear spawnedByReset on every relocation
	// rather than only on a dungeon change (spec.md §4.1(d)).
	isItemKind bool

	destroyed bool
}

// New constructs a detached Object. oid may be any value the caller's
// factory minted, including a negative sentinel for deserialized or test
// objects (spec.md §3 Lifecycle).
func New(oid int64, keywords, display string, baseWeight float64) *Object {
	o := &Object{
		oid:        oid,
		keyword:    keywords,
		display:    display,
		baseWeight: baseWeight,
	}
	o.curWeight = baseWeight
	return o
}

// Base implements Node for Object itself, so a bare *Object can be used
// wherever a Node is expected (e.g. in tests).
func (o *Object) Base() *Object { return o }

// ObjectID returns the object's unique id. Immutable after construction.
func (o *Object) ObjectID() int64 { return o.oid }

// Keywords returns the space-delimited keyword string.
func (o *Object) Keywords() string { return o.keyword }

// SetKeywords replaces the keyword string.
func (o *Object) SetKeywords(k string) { o.keyword = k }

// Display returns the display name.
func (o *Object) Display() string { return o.display }

// SetDisplay replaces the display name.
func (o *Object) SetDisplay(d string) { o.display = d }

// Description returns the long description, or nil if unset.
func (o *Object) Description() *string { return o.description }

// SetDescription sets the long description.
func (o *Object) SetDescription(d string) { o.description = &d }

// RoomDescription returns the in-room description. Per spec.md §9 design
// notes, an unset roomDescription always falls through to Display — callers
// should prefer EffectiveRoomDescription over reading the field directly.
func (o *Object) RoomDescription() *string { return o.roomDescription }

// SetRoomDescription sets the in-room description.
func (o *Object) SetRoomDescription(d string) { o.roomDescription = &d }

// EffectiveRoomDescription returns RoomDescription when set, else Display.
func (o *Object) EffectiveRoomDescription() string {
	if o.roomDescription != nil {
		return *o.roomDescription
	}
	return o.display
}

// MapText returns the map glyph text, or nil if unset.
func (o *Object) MapText() *string { return o.mapText }

// SetMapText sets the map glyph text.
func (o *Object) SetMapText(t string) { o.mapText = &t }

// MapColor returns the map color name, or nil if unset.
func (o *Object) MapColor() *string { return o.mapColor }

// SetMapColor sets the map color name.
func (o *Object) SetMapColor(c string) { o.mapColor = &c }

// TemplateID returns the template id this object was spawned from, if any.
func (o *Object) TemplateID() *string { return o.templateID }

// SetTemplateID sets the originating template id.
func (o *Object) SetTemplateID(id string) { o.templateID = &id }

// BaseWeight returns the object's own weight, excluding contents.
func (o *Object) BaseWeight() float64 { return o.baseWeight }

// SetBaseWeight sets the object's own weight and repropagates the delta
// to every ancestor (spec.md §4.1: weight conservation must hold after
// any mutation, not just Add/Remove).
func (o *Object) SetBaseWeight(w float64) {
	delta := w - o.baseWeight
	o.baseWeight = w
	o.curWeight += delta
	o.propagateWeightDelta(delta)
}

// CurrentWeight returns baseWeight + the sum of every child's
// currentWeight (spec.md §3 invariant: weight conservation).
func (o *Object) CurrentWeight() float64 { return o.curWeight }

// Value returns the currency value carried by this object.
func (o *Object) Value() int64 { return o.value }

// SetValue sets the currency value.
func (o *Object) SetValue(v int64) { o.value = v }

// Location returns the parent Node, or nil if detached.
func (o *Object) Location() Node { return o.parent }

// Contents returns a copy of the child list (direct children only).
func (o *Object) Contents() []Node {
	out := make([]Node, len(o.children))
	copy(out, o.children)
	return out
}

// Dungeon returns the dungeon this object belongs to, or nil.
func (o *Object) Dungeon() DungeonRef { return o.dungeon }

// SpawnedByReset returns the reset that spawned this object, or nil.
func (o *Object) SpawnedByReset() ResetTracker { return o.spawnedByReset }

// SetSpawnedByReset establishes the tracking back-reference (spec.md §4.7
// step 6: "set spawnedByReset, establishing the tracking link on both
// sides"). The reset-side half of that link (adding to r.spawned) is the
// caller's responsibility, since only the reset package knows its own
// spawned-list shape.
func (o *Object) SetSpawnedByReset(r ResetTracker) { o.spawnedByReset = r }

// MarkItemKind flags this object as a member of the Item family, so Move
// clears spawnedByReset on every relocation rather than only on a dungeon
// change. Called once by Item's constructor.
func (o *Object) MarkItemKind() { o.isItemKind = true }

// IsDestroyed reports whether Destroy has already run on this object.
func (o *Object) IsDestroyed() bool { return o.destroyed }

// Match performs whitespace-tokenized subword matching (spec.md §4.1):
// every query token must be a prefix of some keyword token on the object.
func (o *Object) Match(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	qTokens := strings.Fields(strings.ToLower(query))
	kTokens := strings.Fields(strings.ToLower(o.keyword))
	for _, qt := range qTokens {
		matched := false
		for _, kt := range kTokens {
			if strings.HasPrefix(kt, qt) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Contains reports whether child is a direct child of o.
func (o *Object) Contains(child Node) bool {
	for _, c := range o.children {
		if c == child {
			return true
		}
	}
	return false
}

// Add attaches one or more children to o (spec.md §4.1). Idempotently
// skips children already contained; maintains the child's location
// back-pointer; propagates weight; re-homes the child's dungeon pointer;
// and, for Item-family children, clears spawnedByReset on this first
// relocation.
func (o *Object) Add(parent Node, children ...Node) {
	for _, child := range children {
		cb := child.Base()
		if o.Contains(child) {
			continue
		}
		hadParent := cb.parent != nil
		if hadParent {
			// detach from old parent without re-propagating dungeon twice
			oldParent := cb.parent
			oldParent.Base().removeChild(child)
		}
		o.children = append(o.children, child)
		cb.parent = parent
		o.propagateWeightDelta(cb.curWeight)
		setDungeon(child, o.dungeon)
		// Initial placement (reset spawning a detached object into a room)
		// keeps the tracking link; only a relocation clears it.
		if hadParent && cb.isItemKind && cb.spawnedByReset != nil {
			cb.spawnedByReset.Untrack(child)
			cb.spawnedByReset = nil
		}
	}
}

// Remove detaches one or more direct children from o. Never fails; a
// child not present is silently skipped (spec.md §4.1 error conditions:
// "container add/remove never fails").
func (o *Object) Remove(children ...Node) {
	for _, child := range children {
		if !o.Contains(child) {
			continue
		}
		o.removeChild(child)
		cb := child.Base()
		cb.parent = nil
		setDungeon(child, nil)
	}
}

func (o *Object) removeChild(child Node) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			o.propagateWeightDelta(-child.Base().curWeight)
			return
		}
	}
}

// Move relocates child to newParent (nil detaches entirely). This is the
// general entry point described in spec.md §4.1 and is what Destroy and
// ordinary pickup/drop/equip code should call.
func Move(child Node, newParent Node) {
	cb := child.Base()
	oldParent := cb.parent
	if oldParent == newParent {
		return
	}
	oldDungeon := cb.dungeon
	if oldParent != nil {
		oldParent.Base().removeChild(child)
		cb.parent = nil
	}
	if newParent == nil {
		setDungeon(child, nil)
	} else {
		pb := newParent.Base()
		pb.children = append(pb.children, child)
		cb.parent = newParent
		pb.propagateWeightDelta(cb.curWeight)
		setDungeon(child, pb.dungeon)
	}
	newDungeon := cb.dungeon
	if oldParent != nil && cb.isItemKind && cb.spawnedByReset != nil {
		// Item family: any relocation clears the reset link, even within
		// the same dungeon (spec.md §4.1(d)). Initial placement from a
		// detached state keeps it.
		cb.spawnedByReset.Untrack(child)
		cb.spawnedByReset = nil
	} else if cb.spawnedByReset != nil && oldDungeon != nil && oldDungeon != newDungeon {
		// Non-item kinds (e.g. a relocated Mob) only clear on a dungeon
		// change (spec.md §3 invariant 5).
		cb.spawnedByReset.Untrack(child)
		cb.spawnedByReset = nil
	}
}

// SetDungeon re-homes this object (and, recursively, every transitive
// child) to d, or unassigns recursively when d is nil (spec.md §3
// invariant 2: dungeon propagation).
func setDungeon(n Node, d DungeonRef) {
	b := n.Base()
	if b.dungeon == d {
		return
	}
	if b.dungeon != nil {
		b.dungeon.UnregisterObject(n)
	}
	b.dungeon = d
	if d != nil {
		d.RegisterObject(n)
	}
	for _, child := range b.children {
		setDungeon(child, d)
	}
}

// SetDungeon is the exported entry point used by callers that assign a
// dungeon directly (e.g. a freshly constructed Room or Dungeon root),
// rather than via Add/Move.
func SetDungeon(n Node, d DungeonRef) { setDungeon(n, d) }

func (o *Object) propagateWeightDelta(delta float64) {
	if delta == 0 {
		return
	}
	o.curWeight += delta
	if o.parent != nil {
		o.parent.Base().propagateWeightDelta(delta)
	}
}

// Destroy recursively tears down n: detaches from location and dungeon,
// clears the reset back-reference, destroys children, and blanks the
// display to a sentinel string (spec.md §3 Lifecycle). Idempotent — a
// second call on an already-destroyed object is a no-op (spec.md §4.1
// error conditions).
func Destroy(n Node) {
	b := n.Base()
	if b.destroyed {
		return
	}
	b.destroyed = true

	if hook, ok := n.(Destroyer); ok {
		hook.OnDestroy()
	}

	for _, child := range append([]Node(nil), b.children...) {
		Destroy(child)
	}

	Move(n, nil)
	// Move returns early for a node with no location, so a root node is
	// unassigned from its dungeon here.
	setDungeon(n, nil)

	if b.spawnedByReset != nil {
		b.spawnedByReset.Untrack(n)
		b.spawnedByReset = nil
	}

	b.display = "[destroyed]"
}
