package world

import (
	"strings"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/object"
	"github.com/brackenmoor/mudcore/internal/simerr"
)

// IDRegistry is the minimal surface the global dungeon registry (C10)
// exposes for id assignment side effects (spec.md §4.8: "Assignment via
// Dungeon.id setter registers; clearing unregisters").
type IDRegistry interface {
	RegisterDungeon(id string, d *Dungeon)
	UnregisterDungeon(id string)
}

// Resetter is implemented by internal/reset.Reset. Defined here (not
// there) so world never imports the reset package; reset imports world
// and satisfies this interface, keeping the dependency graph acyclic
// (spec.md §4.7/§4.8: "Dungeon owns ... a list of Resets").
type Resetter interface {
	Execute(d *Dungeon) int
}

// Dungeon owns a 3D grid of Rooms, the dungeon's resets, its template
// table, and a flat registry of every object whose dungeon field points
// to it (spec.md §3).
type Dungeon struct {
	id            string
	name          string
	Description   string
	ResetMessage  string
	Dims          geo.MapDimensions
	grid          [][][]*Room // grid[z][y][x]
	Resets        []Resetter
	templates     map[string]*object.Template
	contents      map[int64]object.Node
}

// NewDungeon allocates an empty layers×height×width grid of nil room
// slots (spec.md §4.2).
func NewDungeon(dims geo.MapDimensions) *Dungeon {
	grid := make([][][]*Room, dims.Layers)
	for z := range grid {
		grid[z] = make([][]*Room, dims.Height)
		for y := range grid[z] {
			grid[z][y] = make([]*Room, dims.Width)
		}
	}
	return &Dungeon{
		Dims:      dims,
		grid:      grid,
		templates: map[string]*object.Template{},
		contents:  map[int64]object.Node{},
	}
}

// ID returns the dungeon's registry id.
func (d *Dungeon) ID() string { return d.id }

// Name returns the dungeon's display name.
func (d *Dungeon) Name() string { return d.name }

// SetName sets the display name. A blank name is a caller bug and panics
// (spec.md §7 EmptyName: "fail fast").
func (d *Dungeon) SetName(name string) {
	if strings.TrimSpace(name) == "" {
		panic("world: dungeon name must not be blank")
	}
	d.name = name
}

// SetID assigns the dungeon's id and, via reg, registers it in the global
// dungeon registry; passing an empty string clears and unregisters.
func (d *Dungeon) SetID(id string, reg IDRegistry) {
	if d.id != "" && reg != nil {
		reg.UnregisterDungeon(d.id)
	}
	d.id = id
	if id != "" && reg != nil {
		reg.RegisterDungeon(id, d)
	}
}

// RegisterObject implements object.DungeonRef.
func (d *Dungeon) RegisterObject(n object.Node) { d.contents[n.Base().ObjectID()] = n }

// UnregisterObject implements object.DungeonRef.
func (d *Dungeon) UnregisterObject(n object.Node) { delete(d.contents, n.Base().ObjectID()) }

// ContentsSnapshot returns every object currently registered to this
// dungeon (spec.md §8: "∀ dungeon d, ∀ object o with o.dungeon == d: o is
// in d's flat contents registry").
func (d *Dungeon) ContentsSnapshot() []object.Node {
	out := make([]object.Node, 0, len(d.contents))
	for _, n := range d.contents {
		out = append(out, n)
	}
	return out
}

// RoomAt returns the room at c, if any.
func (d *Dungeon) RoomAt(c geo.Coordinate) (*Room, bool) {
	if !d.Dims.InBounds(c) {
		return nil, false
	}
	r := d.grid[c.Z][c.Y][c.X]
	return r, r != nil
}

// AddRoom places r at its own Coordinates, bounds-checking first; out of
// range makes no mutation (spec.md §4.2).
func (d *Dungeon) AddRoom(r *Room) bool {
	if !d.Dims.InBounds(r.Coordinates) {
		return false
	}
	d.grid[r.Coordinates.Z][r.Coordinates.Y][r.Coordinates.X] = r
	object.SetDungeon(r, d)
	return true
}

// CreateRoom allocates and places a fresh Room at c, bounds-checking
// first (spec.md §4.2).
func (d *Dungeon) CreateRoom(oid int64, c geo.Coordinate) (*Room, bool) {
	if !d.Dims.InBounds(c) {
		return nil, false
	}
	r := NewRoom(oid, c)
	d.AddRoom(r)
	return r, true
}

// GenerateRooms instantiates every cell of the grid with a fresh Room
// using the given default exit mask, returning the count created
// (spec.md §4.2).
func (d *Dungeon) GenerateRooms(nextOID func() int64, defaultExits direction.Direction) int {
	count := 0
	for z := int32(0); z < d.Dims.Layers; z++ {
		for y := int32(0); y < d.Dims.Height; y++ {
			for x := int32(0); x < d.Dims.Width; x++ {
				c := geo.Coordinate{X: x, Y: y, Z: z}
				r := NewRoom(nextOID(), c)
				r.AllowedExits = defaultExits
				d.AddRoom(r)
				count++
			}
		}
	}
	return count
}

// GetStep applies dir's cardinal-component delta to c, looks up the
// neighboring room, and returns nothing if out of bounds, empty, or dense
// (spec.md §4.2).
func (d *Dungeon) GetStep(c geo.Coordinate, dir direction.Direction) (*Room, bool) {
	delta := direction.Step(dir)
	next := c.Add(delta.DX, delta.DY, delta.DZ)
	r, ok := d.RoomAt(next)
	if !ok || r.Dense {
		return nil, false
	}
	return r, true
}

// ResolveTemplate resolves a template id local to this dungeon. Callers
// that need the "local dungeon first, then global" fallback of spec.md
// §4.7 combine this with a second dungeon's ResolveTemplate call.
func (d *Dungeon) ResolveTemplate(id string) (*object.Template, error) {
	t, ok := d.templates[id]
	if !ok {
		return nil, simerr.ErrUnknownTemplate
	}
	return t, nil
}

// SetTemplate registers a template under id in this dungeon's table.
func (d *Dungeon) SetTemplate(id string, t *object.Template) {
	d.templates[id] = t
}

// ExecuteResets walks every reset, sums spawns, and broadcasts
// ResetMessage to the whole dungeon if any spawns occurred and the
// message is set (spec.md §4.8).
func (d *Dungeon) ExecuteResets(broadcast func(text string, group collab.MessageGroup)) int {
	total := 0
	for _, r := range d.Resets {
		total += r.Execute(d)
	}
	if total > 0 && d.ResetMessage != "" && broadcast != nil {
		broadcast(d.ResetMessage, collab.MessageSystem)
	}
	return total
}

// Destroy tears the dungeon down: removes every room link, unassigns
// every contained object's dungeon, and empties the grid (spec.md §3
// Lifecycle).
func (d *Dungeon) Destroy(linkReg LinkRegistry) {
	seen := map[*RoomLink]bool{}
	for z := range d.grid {
		for y := range d.grid[z] {
			for x := range d.grid[z][y] {
				r := d.grid[z][y][x]
				if r == nil {
					continue
				}
				for _, l := range r.Links() {
					if !seen[l] {
						seen[l] = true
						l.Remove(linkReg)
					}
				}
				d.grid[z][y][x] = nil
			}
		}
	}
	for _, n := range d.ContentsSnapshot() {
		object.SetDungeon(n, nil)
	}
}
