package world

import (
	"fmt"

	"github.com/brackenmoor/mudcore/internal/collab"
	"github.com/brackenmoor/mudcore/internal/direction"
	"github.com/brackenmoor/mudcore/internal/geo"
	"github.com/brackenmoor/mudcore/internal/object"
)

// StepGate is an optional hook a Node implements to veto Step attempts
// before anything else runs (spec.md §4.3: "If the mover is a shopkeeper
// mob, fail immediately"). mob.Mob implements this and returns false for
// shopkeepers.
type StepGate interface {
	CanAttemptStep() bool
}

// OnStepper is an optional hook invoked after a successful Step completes
// (spec.md §4.3: "... afterOnEnter → mover.OnStep(dir, destRoom)").
type OnStepper interface {
	OnStep(dir direction.Direction, destRoom *Room)
}

// Movable is a Node that caches its room's coordinates while nested in a
// Room (spec.md §3). mob.Mob embeds this to get Step for free.
type Movable struct {
	*object.Object
	cachedCoord geo.Coordinate
	hasCoord    bool
}

// NewMovable constructs a detached Movable.
func NewMovable(oid int64, keywords, display string, weight float64) *Movable {
	return &Movable{Object: object.New(oid, keywords, display, weight)}
}

// CurrentRoom returns the Room this Movable is nested in, if any.
func (m *Movable) CurrentRoom() (*Room, bool) {
	r, ok := m.Location().(*Room)
	return r, ok
}

// CachedCoordinate returns the last known room coordinate, valid only
// while hasCoord is true.
func (m *Movable) CachedCoordinate() (geo.Coordinate, bool) {
	return m.cachedCoord, m.hasCoord
}

func (m *Movable) refreshCachedCoordinate() {
	if r, ok := m.CurrentRoom(); ok {
		m.cachedCoord = r.Coordinates
		m.hasCoord = true
		return
	}
	m.hasCoord = false
}

// StepScripts are optional callbacks fired around the generic exit/enter
// hooks of a Step (spec.md §4.3; spec.md §9 collapses the source's
// method-overload variants to a single options-style call).
type StepScripts struct {
	BeforeOnExit  func()
	AfterOnExit   func()
	BeforeOnEnter func()
	AfterOnEnter  func()
}

// Step moves self (the concrete Node embedding this Movable) one room in
// dir, running the full exit/enter sequence (spec.md §4.3). self must be
// the outer Node value (e.g. a *mob.Mob), not m itself, so that StepGate/
// OnStepper/Messenger/AIEventSink hooks on the concrete type are honored.
func (m *Movable) Step(self object.Node, dir direction.Direction, scripts StepScripts) bool {
	if gate, ok := self.(StepGate); ok && !gate.CanAttemptStep() {
		return false
	}
	sourceRoom, ok := m.CurrentRoom()
	if !ok {
		return false
	}
	neighbor, ok := sourceRoom.GetStep(dir)
	if !ok {
		return false
	}
	if !sourceRoom.CanExit(self, dir) {
		return false
	}
	reverseDir := direction.Reverse(dir)
	if !neighbor.CanEnter(self, reverseDir) {
		return false
	}

	if scripts.BeforeOnExit != nil {
		scripts.BeforeOnExit()
	}
	display := m.Display()
	sourceRoom.Broadcast(fmt.Sprintf("%s leaves to the %s.", display, dir), collab.MessageInfo, self)
	sourceRoom.OnExit(self, dir)
	if scripts.AfterOnExit != nil {
		scripts.AfterOnExit()
	}

	object.Move(self, neighbor)
	m.refreshCachedCoordinate()

	if scripts.BeforeOnEnter != nil {
		scripts.BeforeOnEnter()
	}
	neighbor.Broadcast(fmt.Sprintf("%s arrives from the %s.", display, reverseDir), collab.MessageInfo, self)
	neighbor.OnEnter(self, reverseDir)
	if scripts.AfterOnEnter != nil {
		scripts.AfterOnEnter()
	}

	if stepper, ok := self.(OnStepper); ok {
		stepper.OnStep(dir, neighbor)
	}
	return true
}
