package world

import "github.com/brackenmoor/mudcore/internal/direction"

// LinkRegistry is the minimal surface the global room-link registry (C10)
// must expose. Defined here, implemented there, so world never imports
// the registry package (spec.md §4.8: "register in the global link
// registry" as part of RoomLink creation semantics).
type LinkRegistry interface {
	AddLink(l *RoomLink)
	RemoveLink(l *RoomLink)
}

// RoomLink is a portal that overrides grid adjacency between two rooms,
// optionally one-way, optionally cross-dungeon (spec.md §3, §4.2).
type RoomLink struct {
	FromRoom *Room
	FromDir  direction.Direction
	ToRoom   *Room
	ToDir    direction.Direction
	OneWay   bool
}

// NewRoomLink creates a link from (fromRoom, dir) to toRoom, inferring the
// reverse direction, registering with fromRoom always and toRoom only
// when two-way, and registering in the global registry (spec.md §4.2).
func NewRoomLink(reg LinkRegistry, fromRoom *Room, dir direction.Direction, toRoom *Room, oneWay bool) *RoomLink {
	l := &RoomLink{
		FromRoom: fromRoom,
		FromDir:  dir,
		ToRoom:   toRoom,
		ToDir:    direction.Reverse(dir),
		OneWay:   oneWay,
	}
	fromRoom.links = append(fromRoom.links, l)
	if !oneWay {
		toRoom.links = append(toRoom.links, l)
	}
	if reg != nil {
		reg.AddLink(l)
	}
	return l
}

// Remove un-registers the link from both endpoints and the global
// registry. Idempotent: a second call is a safe no-op (spec.md §4.2,
// spec.md §8 idempotence properties).
func (l *RoomLink) Remove(reg LinkRegistry) {
	l.FromRoom.links = removeLink(l.FromRoom.links, l)
	l.ToRoom.links = removeLink(l.ToRoom.links, l)
	if reg != nil {
		reg.RemoveLink(l)
	}
}

func removeLink(links []*RoomLink, target *RoomLink) []*RoomLink {
	out := links[:0:0]
	for _, l := range links {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}

// GetRoomLinkDestination resolves the destination of stepping from
// fromRoom in dir across link l: the forward edge always; for two-way
// links, also the reverse edge (spec.md §4.2).
func GetRoomLinkDestination(l *RoomLink, fromRoom *Room, dir direction.Direction) (*Room, bool) {
	if l.FromRoom == fromRoom && l.FromDir == dir {
		return l.ToRoom, true
	}
	if !l.OneWay && l.ToRoom == fromRoom && l.ToDir == dir {
		return l.FromRoom, true
	}
	return nil, false
}
