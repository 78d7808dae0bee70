// Package simerr holds the sentinel errors the core returns for
// locally-recoverable conditions (spec.md §7). Conditions marked "throw"
// in that table are programmer errors and are raised with panic at the
// call site instead — they never appear here.
package simerr

import "errors"

var (
	// ErrOutOfBounds is returned when room coordinates fall outside a
	// dungeon's grid. Callers make no mutation when they see this.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrUnknownTemplate is returned when a Reset references a template
	// id that cannot be resolved in the local or global template table.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrUnknownRoom names a room-ref string that does not resolve to an
	// existing Room. Reset.Execute logs and skips that case; no function
	// returns this value.
	ErrUnknownRoom = errors.New("unknown room")

	// ErrInvalidTemplateTypeForSlot names a Reset equipped[] entry that
	// resolves to a template that is not Equipment. Reset.Execute logs and
	// skips that entry; no function returns this value.
	ErrInvalidTemplateTypeForSlot = errors.New("template is not valid equipment")

	// ErrInvalidRoomRef is returned by ParseRoomRef on malformed input.
	ErrInvalidRoomRef = errors.New("malformed room reference")

	// ErrInvalidTemplateID is returned by ParseTemplateID on malformed input.
	ErrInvalidTemplateID = errors.New("malformed template id")

	// ErrSelfTarget is returned when code attempts to set a mob's combat
	// target to itself (spec.md §3 invariant 9).
	ErrSelfTarget = errors.New("mob cannot target itself")
)
