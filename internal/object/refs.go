package object

import (
	"strings"

	"github.com/brackenmoor/mudcore/internal/simerr"
)

// ParseTemplateID splits a template-id string into its dungeon scope and
// local id. Plain ids ("sword-basic") resolve within the current dungeon
// and ParseTemplateID returns dungeonID == "". The globalized form
// "@<dungeonId>:<templateId>" resolves cross-dungeon (spec.md §6).
func ParseTemplateID(s string) (dungeonID, localID string, err error) {
	if !strings.HasPrefix(s, "@") {
		return "", s, nil
	}
	rest := s[1:]
	idx := strings.Index(rest, ":")
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", simerr.ErrInvalidTemplateID
	}
	return rest[:idx], rest[idx+1:], nil
}

// FormatTemplateID builds the globalized template-id form for a template
// scoped to a specific dungeon.
func FormatTemplateID(dungeonID, localID string) string {
	return "@" + dungeonID + ":" + localID
}
