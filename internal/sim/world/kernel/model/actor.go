package model

import (
	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/tasks"
)

// Attributes holds actor scalar stats (energy, health, experience, ...).
type Attributes map[string]float64

func (a Attributes) Get(kind string) float64 { return a[kind] }

func (a Attributes) Add(kind string, delta float64) {
	a[kind] += delta
}

type Actor struct {
	ID   string
	Name string

	Pos    Vec3i
	Yaw    int
	Moving bool

	Attributes Attributes

	Inventory *Container
	Equipment *Container

	// BusyTask is the pending busy-window continuation; zero when idle.
	BusyTask       tasks.Handle
	BusyCancelable bool
	BusyProgress   bool // expose progress to presentation

	Events []protocol.Event
}

func (a *Actor) InitDefaults() {
	if a.Attributes == nil {
		a.Attributes = Attributes{}
	}
}

// FaceToward snaps yaw toward a point on the horizontal plane.
func (a *Actor) FaceToward(p Vec3i) {
	dx, dz := p.X-a.Pos.X, p.Z-a.Pos.Z
	switch {
	case absInt(dx) >= absInt(dz) && dx > 0:
		a.Yaw = 90
	case absInt(dx) >= absInt(dz) && dx < 0:
		a.Yaw = 270
	case dz < 0:
		a.Yaw = 180
	default:
		a.Yaw = 0
	}
}

func (a *Actor) IsMoving() bool { return a.Moving }

func (a *Actor) AddEvent(e protocol.Event) {
	a.Events = append(a.Events, e)
}

func (a *Actor) TakeEvents() []protocol.Event {
	ev := a.Events
	a.Events = nil
	return ev
}
