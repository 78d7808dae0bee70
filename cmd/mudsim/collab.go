package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brackenmoor/mudcore/internal/collab"
)

// WallClock implements collab.Clock with the real system clock, mirroring
// the teacher's direct time.Now() calls in its tick-driven managers
// (internal/ai, internal/game/combat) — the one place in this module a
// concrete, non-deterministic Clock is allowed to exist.
type WallClock struct{}

// NowMs implements collab.Clock.
func (WallClock) NowMs() int64 { return time.Now().UnixMilli() }

// SeededRNG implements collab.RNG over math/rand, seeded once at
// construction so a demo run can be made repeatable by fixing the seed
// (spec.md §5: "deterministic given identical inputs and a seeded RNG").
type SeededRNG struct {
	r *rand.Rand
}

// NewSeededRNG constructs an RNG seeded with the given value.
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{r: rand.New(rand.NewSource(seed))}
}

// Intn implements collab.RNG.
func (s *SeededRNG) Intn(n int) int { return s.r.Intn(n) }

// LogSink implements collab.Sink by routing every Send through slog, the
// same structured-logging convention used everywhere else in this module
// (SPEC_FULL.md §A.1). A real telnet frontend would instead write to a
// connected client's socket; this demo driver has no such frontend.
type LogSink struct {
	Label  string
	Logger *slog.Logger
}

// Send implements collab.Sink.
func (s LogSink) Send(text string, group collab.MessageGroup) {
	s.Logger.Info(fmt.Sprintf("[%s] %s", groupName(group), text), "character", s.Label)
}

func groupName(g collab.MessageGroup) string {
	switch g {
	case collab.MessageSystem:
		return "system"
	case collab.MessageCombat:
		return "combat"
	default:
		return "info"
	}
}
