package world

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/simerr"
)

// FormatRoomRef builds the stable on-disk room reference string (spec.md
// §6): "@<dungeonId>{<x>,<y>,<z>}".
func FormatRoomRef(dungeonID string, c geo.Coordinate) string {
	return fmt.Sprintf("@%s{%d,%d,%d}", dungeonID, c.X, c.Y, c.Z)
}

// ParseRoomRef parses a room-ref string back into a dungeon id and
// coordinate. Dungeon ids are non-empty strings free of '{', '}', ':'
// (spec.md §6).
func ParseRoomRef(s string) (dungeonID string, c geo.Coordinate, err error) {
	if !strings.HasPrefix(s, "@") {
		return "", geo.Coordinate{}, simerr.ErrInvalidRoomRef
	}
	rest := s[1:]
	open := strings.Index(rest, "{")
	closeIdx := strings.Index(rest, "}")
	if open <= 0 || closeIdx != len(rest)-1 || closeIdx < open {
		return "", geo.Coordinate{}, simerr.ErrInvalidRoomRef
	}
	dungeonID = rest[:open]
	if strings.ContainsAny(dungeonID, "{}:") {
		return "", geo.Coordinate{}, simerr.ErrInvalidRoomRef
	}
	coordsPart := rest[open+1 : closeIdx]
	parts := strings.Split(coordsPart, ",")
	if len(parts) != 3 {
		return "", geo.Coordinate{}, simerr.ErrInvalidRoomRef
	}
	vals := make([]int32, 3)
	for i, p := range parts {
		n, convErr := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if convErr != nil {
			return "", geo.Coordinate{}, simerr.ErrInvalidRoomRef
		}
		vals[i] = int32(n)
	}
	return dungeonID, geo.Coordinate{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
