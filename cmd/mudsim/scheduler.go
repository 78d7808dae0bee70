package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brackenmoor/mudcore/internal/collab"
)

// TickScheduler implements collab.Scheduler for the demo driver. Each
// registered interval runs its own ticker goroutine under an
// errgroup.Group (grounded on the teacher's cmd/gameserver/main.go, which
// runs every long-lived manager as a g.Go closure against one shared
// context), but no ticker goroutine calls its callback directly — every
// firing is handed to a single drain goroutine over a channel, so the core
// only ever sees one callback executing at a time (spec.md §5: "the core
// never takes locks because it assumes only one actor at a time"; DESIGN.md
// "Concurrency model adaptation": "every call back into the core is
// serialized onto one channel").
type TickScheduler struct {
	ctx  context.Context
	g    *errgroup.Group
	jobs chan tickJob
}

type tickJob struct {
	callback func(nowMs int64)
	nowMs    int64
}

type timerHandle struct {
	cancel context.CancelFunc
}

// NewTickScheduler constructs a scheduler whose timer goroutines and single
// drain loop are all registered on g, so g.Wait() blocks on the whole
// scheduler shutting down cleanly when ctx is canceled.
func NewTickScheduler(ctx context.Context, g *errgroup.Group) *TickScheduler {
	s := &TickScheduler{ctx: ctx, g: g, jobs: make(chan tickJob, 256)}
	g.Go(s.drain)
	return s
}

func (s *TickScheduler) drain() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case j := <-s.jobs:
			j.callback(j.nowMs)
		}
	}
}

// SetAbsoluteInterval implements collab.Scheduler.
func (s *TickScheduler) SetAbsoluteInterval(callback func(nowMs int64), periodMs int64) collab.TimerHandle {
	tctx, cancel := context.WithCancel(s.ctx)
	s.g.Go(func() error {
		ticker := time.NewTicker(time.Duration(periodMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-tctx.Done():
				return nil
			case t := <-ticker.C:
				select {
				case s.jobs <- tickJob{callback: callback, nowMs: t.UnixMilli()}:
				case <-tctx.Done():
					return nil
				}
			}
		}
	})
	return &timerHandle{cancel: cancel}
}

// ClearInterval implements collab.Scheduler.
func (s *TickScheduler) ClearInterval(h collab.TimerHandle) {
	if th, ok := h.(*timerHandle); ok {
		th.cancel()
	}
}
