package world

import (
	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/object"
)

// AIEventSink is the optional hook a mob implements to receive room-entry/
// room-exit notifications (spec.md §4.3: "Room.OnEnter and Room.OnExit
// emit entrance/sight/exit events to every other mob in the room via the
// per-mob AI event sink"). The core never interprets the event payload;
// it only routes it to subscribers, who issue commands back through the
// (out of scope) command layer.
type AIEventSink interface {
	object.Node
	NotifyEvent(event string, other object.Node, dir direction.Direction)
}

// Messenger is the optional hook a mob implements to receive narrated
// broadcast text (spec.md §4.3 leave/arrive messages).
type Messenger interface {
	object.Node
	Notify(text string, group collab.MessageGroup)
}

func init() {
	object.RegisterTypeDefault("Room", map[string]any{
		"keywords":     "room",
		"display":      "a room",
		"baseWeight":   float64(0),
		"allowedExits": int(direction.DefaultExits),
		"dense":        false,
	})
}

// Room is a fixed cell in a Dungeon's grid (spec.md §3).
type Room struct {
	*object.Object
	Coordinates  geo.Coordinate
	AllowedExits direction.Direction
	Dense        bool
	links        []*RoomLink
}

// NewRoom constructs a Room at the given coordinate with the default
// exit policy (cardinals + diagonals, spec.md §3).
func NewRoom(oid int64, c geo.Coordinate) *Room {
	return &Room{
		Object:       object.New(oid, "room", "a room", 0),
		Coordinates:  c,
		AllowedExits: direction.DefaultExits,
	}
}

// TypeTag implements the object serialization type tag.
func (r *Room) TypeTag() string { return "Room" }

// OmitOID reports that Rooms never serialize their oid; a Room is
// identified by its coordinates alone (spec.md §3 invariant 6).
func (r *Room) OmitOID() bool { return true }

// ExtraFields contributes Room-specific serialized fields.
func (r *Room) ExtraFields() map[string]any {
	return map[string]any{
		"coordinates":  map[string]any{"x": r.Coordinates.X, "y": r.Coordinates.Y, "z": r.Coordinates.Z},
		"allowedExits": int(r.AllowedExits),
		"dense":        r.Dense,
	}
}

// LocationRefString implements the hook object.Serialize uses to render a
// child's "location" field as a room-ref string (spec.md §6). A Room not
// yet assigned to a dungeon has no stable ref and returns ok=false.
func (r *Room) LocationRefString() (string, bool) {
	if r.Dungeon() == nil {
		return "", false
	}
	return FormatRoomRef(r.Dungeon().ID(), r.Coordinates), true
}

// Links returns a copy of the room's incident links.
func (r *Room) Links() []*RoomLink {
	out := make([]*RoomLink, len(r.links))
	copy(out, r.links)
	return out
}

// GetStep resolves the neighbor in dir: a link takes precedence, then the
// allowedExits mask, then the dungeon's raw spatial grid (spec.md §4.2).
func (r *Room) GetStep(dir direction.Direction) (*Room, bool) {
	for _, l := range r.links {
		if dest, ok := GetRoomLinkDestination(l, r, dir); ok {
			if dest.Dense {
				return nil, false
			}
			return dest, true
		}
	}
	if r.AllowedExits&dir == 0 {
		return nil, false
	}
	dg := r.dungeon()
	if dg == nil {
		return nil, false
	}
	return dg.GetStep(r.Coordinates, dir)
}

// CanExit mirrors GetStep's resolution order but returns only a boolean,
// so callers that don't need the destination avoid the lookup cost
// (spec.md §4.2: "Links override allowedExits for both exit and entry
// checks").
func (r *Room) CanExit(mover object.Node, dir direction.Direction) bool {
	for _, l := range r.links {
		if _, ok := GetRoomLinkDestination(l, r, dir); ok {
			return true
		}
	}
	return r.AllowedExits&dir != 0
}

// CanEnter reports whether mover may enter r from dir. Dense rooms refuse
// entry outright; subclasses in a richer implementation could override
// for keyed doors, but the base policy is dense-gated only (spec.md §4.2).
func (r *Room) CanEnter(mover object.Node, dir direction.Direction) bool {
	return !r.Dense
}

func (r *Room) dungeon() *Dungeon {
	dr := r.Dungeon()
	if dr == nil {
		return nil
	}
	d, _ := dr.(*Dungeon)
	return d
}

// OnEnter fires entrance/sight events for mover arriving from fromDir
// (spec.md §4.3).
func (r *Room) OnEnter(mover object.Node, fromDir direction.Direction) {
	for _, sibling := range r.Contents() {
		if sibling == mover {
			continue
		}
		if sink, ok := sibling.(AIEventSink); ok {
			sink.NotifyEvent("entrance", mover, fromDir)
		}
		if sink, ok := mover.(AIEventSink); ok {
			sink.NotifyEvent("sight", sibling, fromDir)
		}
	}
}

// OnExit fires exit events for mover departing toward dir.
func (r *Room) OnExit(mover object.Node, dir direction.Direction) {
	for _, sibling := range r.Contents() {
		if sibling == mover {
			continue
		}
		if sink, ok := sibling.(AIEventSink); ok {
			sink.NotifyEvent("exit", mover, dir)
		}
	}
}

// Broadcast sends text to every Messenger in the room other than exclude.
func (r *Room) Broadcast(text string, group collab.MessageGroup, exclude object.Node) {
	for _, n := range r.Contents() {
		if n == exclude {
			continue
		}
		if m, ok := n.(Messenger); ok {
			m.Notify(text, group)
		}
	}
}
