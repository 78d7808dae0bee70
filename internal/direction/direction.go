// Package direction implements the ten-value direction algebra used
// throughout the world simulation: the four cardinals, the four diagonals,
// and up/down. Every direction is a single bit so exit policies compose as
// bitmasks (spec.md §3).
package direction

import "strings"

// Direction is one of the ten cardinal/diagonal/vertical directions.
type Direction uint16

const (
	North Direction = 1 << iota
	South
	East
	West
	Northeast
	Northwest
	Southeast
	Southwest
	Up
	Down
)

// All lists every direction in a stable order, used for iteration
// (e.g. room-generation default exits).
var All = []Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest, Up, Down}

// Cardinals is the bitmask of the four cardinal directions. Combined with
// the four diagonals this is the default allowedExits mask for a freshly
// created Room (spec.md §3: "default: cardinals + diagonals").
const Cardinals = North | South | East | West

// Diagonals is the bitmask of the four diagonal directions.
const Diagonals = Northeast | Northwest | Southeast | Southwest

// DefaultExits is the default allowedExits mask for a new Room.
const DefaultExits = Cardinals | Diagonals

var reverse = map[Direction]Direction{
	North:     South,
	South:     North,
	East:      West,
	West:      East,
	Northeast: Southwest,
	Southwest: Northeast,
	Northwest: Southeast,
	Southeast: Northwest,
	Up:        Down,
	Down:      Up,
}

// Reverse returns the opposite direction (e.g. Reverse(North) == South).
func Reverse(d Direction) Direction {
	return reverse[d]
}

// Delta is the per-direction {dx, dy, dz} step applied to a coordinate.
// Cardinal components follow spec.md §4.2 exactly: "north: y−1; south: y+1;
// east: x+1; west: x−1; up: z+1; down: z−1"; diagonals combine the two
// cardinal components they imply.
type Delta struct {
	DX, DY, DZ int32
}

var deltas = map[Direction]Delta{
	North:     {DX: 0, DY: -1, DZ: 0},
	South:     {DX: 0, DY: 1, DZ: 0},
	East:      {DX: 1, DY: 0, DZ: 0},
	West:      {DX: -1, DY: 0, DZ: 0},
	Northeast: {DX: 1, DY: -1, DZ: 0},
	Northwest: {DX: -1, DY: -1, DZ: 0},
	Southeast: {DX: 1, DY: 1, DZ: 0},
	Southwest: {DX: -1, DY: 1, DZ: 0},
	Up:        {DX: 0, DY: 0, DZ: 1},
	Down:      {DX: 0, DY: 0, DZ: -1},
}

// Step returns the per-direction coordinate delta.
func Step(d Direction) Delta {
	return deltas[d]
}

// HasNorth, HasSouth, HasEast, HasWest report whether a direction carries
// the named cardinal component — true for the cardinal itself and for the
// two diagonals that include it. Used by callers that need to reason about
// a diagonal in terms of its cardinal parts (e.g. partial exit policies).
func HasNorth(d Direction) bool { return d == North || d == Northeast || d == Northwest }
func HasSouth(d Direction) bool { return d == South || d == Southeast || d == Southwest }
func HasEast(d Direction) bool  { return d == East || d == Northeast || d == Southeast }
func HasWest(d Direction) bool  { return d == West || d == Northwest || d == Southwest }

// IsVertical reports whether d is Up or Down.
func IsVertical(d Direction) bool { return d == Up || d == Down }

// IsDiagonal reports whether d is one of the four diagonals.
func IsDiagonal(d Direction) bool {
	return d == Northeast || d == Northwest || d == Southeast || d == Southwest
}

var fullNames = map[Direction]string{
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	Northeast: "northeast",
	Northwest: "northwest",
	Southeast: "southeast",
	Southwest: "southwest",
	Up:        "up",
	Down:      "down",
}

var shortNames = map[Direction]string{
	North:     "n",
	South:     "s",
	East:      "e",
	West:      "w",
	Northeast: "ne",
	Northwest: "nw",
	Southeast: "se",
	Southwest: "sw",
	Up:        "u",
	Down:      "d",
}

// String returns the full-word form ("north", "northeast", "up", ...).
func (d Direction) String() string {
	if s, ok := fullNames[d]; ok {
		return s
	}
	return "unknown"
}

// Abbr returns the abbreviated form ("n", "ne", "u", ...).
func (d Direction) Abbr() string {
	return shortNames[d]
}

// Parse converts text (full or abbreviated, case-insensitive) to a
// Direction. ok is false for unrecognized text.
func Parse(text string) (d Direction, ok bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	for dir, name := range fullNames {
		if name == t {
			return dir, true
		}
	}
	for dir, name := range shortNames {
		if name == t {
			return dir, true
		}
	}
	return 0, false
}
