package crafting

import (
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/tasks"
	"frontiercraft.ai/internal/sim/world/feature/economy/cost"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

type State string

const (
	Idle          State = "IDLE"
	Placing       State = "PLACING"
	TimedCrafting State = "CRAFTING"
)

// Env is the world surface the orchestrator sequences against.
type Env interface {
	cost.Env

	Schedule(kind tasks.Kind, ticks int, fire func()) tasks.Handle
	CancelTask(h tasks.Handle) bool
	TaskProgress(h tasks.Handle) (float64, bool)
	TaskRemaining(h tasks.Handle) int

	// Placement handles. SpawnPlacement creates a provisional object that is
	// tracked but neither committed to the world nor paid for.
	SpawnPlacement(def catalogs.CraftDef) *model.WorldObject
	PlacementLegal(o *model.WorldObject, pos model.Vec3i) bool
	CommitPlacement(o *model.WorldObject)
	DiscardPlacement(o *model.WorldObject)

	// DropResult spawns produced units into the world when no container can
	// take them.
	DropResult(a *model.Actor, item string, qty int, durability float64)

	EnergyAttr() string

	OnCraftCompleted(a *model.Actor, def catalogs.CraftDef)
	OnBuildCompleted(a *model.Actor, o *model.WorldObject)
	OnSelectionCancelled(a *model.Actor)
}

// Orchestrator is the per-actor craft/build state machine:
// Idle -> Placing -> TimedCrafting -> {Completed | Cancelled}. Cost is paid
// at the commit transition only; a cancelled sequence has paid nothing.
type Orchestrator struct {
	actor *model.Actor

	state      State
	def        catalogs.CraftDef
	cost       cost.Cost
	containers []*model.Container
	placement  *model.WorldObject
	task       tasks.Handle

	counts map[string]int
}

func New(a *model.Actor) *Orchestrator {
	return &Orchestrator{actor: a, state: Idle, counts: map[string]int{}}
}

func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) Active() (catalogs.CraftDef, bool) {
	if o.state == Idle {
		return catalogs.CraftDef{}, false
	}
	return o.def, true
}

// CraftedCount is the per-actor completion bookkeeping for one craft id.
func (o *Orchestrator) CraftedCount(craftID string) int { return o.counts[craftID] }

// Progress reports the active timer's progress for presentation.
func (o *Orchestrator) Progress(env Env) (float64, bool) {
	if o.state != TimedCrafting {
		return 0, false
	}
	return env.TaskProgress(o.task)
}

func (o *Orchestrator) EtaTicks(env Env) int {
	if o.state != TimedCrafting {
		return 0
	}
	return env.TaskRemaining(o.task)
}

// Start begins a craft or build sequence. Only one sequence may be active
// per actor; starting while one is active is a no-op until the prior one
// resolves or cancels. Buildables enter Placing without an affordability
// gate (the gate is at placement confirm); non-placed crafts require
// CanAfford to enter TimedCrafting.
func (o *Orchestrator) Start(env Env, def catalogs.CraftDef, containers []*model.Container) bool {
	if o.state != Idle {
		return false
	}
	o.def = def
	o.cost = cost.Derive(def)
	o.containers = containers

	if def.Buildable() {
		o.placement = env.SpawnPlacement(def)
		o.state = Placing
		return true
	}
	if !cost.CanAfford(env, o.cost, o.actor, containers) {
		o.reset()
		return false
	}
	o.beginTimed(env)
	return true
}

// ConfirmPlacement validates the position via the placement-legality
// callback and the cost via CanAfford; both must hold to enter
// TimedCrafting.
func (o *Orchestrator) ConfirmPlacement(env Env, pos model.Vec3i) bool {
	if o.state != Placing {
		return false
	}
	if !env.PlacementLegal(o.placement, pos) {
		return false
	}
	if !cost.CanAfford(env, o.cost, o.actor, o.containers) {
		return false
	}
	o.placement.Pos = pos
	o.actor.FaceToward(pos)
	o.beginTimed(env)
	return true
}

func (o *Orchestrator) beginTimed(env Env) {
	o.state = TimedCrafting
	if o.def.DurationTicks <= 0 {
		// Instant crafts commit synchronously on the same tick.
		o.complete(env)
		return
	}
	kind := tasks.KindCraft
	if o.def.Buildable() {
		kind = tasks.KindBuild
	}
	o.task = env.Schedule(kind, o.def.DurationTicks, func() {
		o.task = 0
		o.complete(env)
	})
}

// Cancel discards the provisional state. No cost has been paid at this
// point, so there is nothing to refund.
func (o *Orchestrator) Cancel(env Env) bool {
	switch o.state {
	case Placing:
		env.DiscardPlacement(o.placement)
	case TimedCrafting:
		env.CancelTask(o.task)
		if o.placement != nil {
			env.DiscardPlacement(o.placement)
		}
	default:
		return false
	}
	o.reset()
	env.OnSelectionCancelled(o.actor)
	return true
}

// OnActorMoved cancels a non-build-mode timed craft. Build mode is cancelled
// only by explicit input.
func (o *Orchestrator) OnActorMoved(env Env) {
	if o.state == TimedCrafting && !o.def.Buildable() {
		o.Cancel(env)
	}
}

func (o *Orchestrator) complete(env Env) {
	def := o.def
	cost.Pay(env, o.cost, o.actor, o.containers, env.EnergyAttr(), def.EnergyCost)

	if def.Buildable() {
		placed := o.placement
		env.CommitPlacement(placed)
		o.finishBookkeeping(def)
		o.reset()
		env.OnBuildCompleted(o.actor, placed)
		return
	}

	durability := 0.0
	if d, ok := env.Item(def.Result); ok {
		durability = d.Durability
	}
	granted := 0
	for granted < def.Quantity {
		placedSlot := inventory.InvalidSlot
		for _, c := range o.containers {
			if slot := inventory.AddItem(env, c, def.Result, 1, durability, ""); slot != inventory.InvalidSlot {
				placedSlot = slot
				break
			}
		}
		if placedSlot == inventory.InvalidSlot {
			break
		}
		granted++
	}
	if granted < def.Quantity {
		env.DropResult(o.actor, def.Result, def.Quantity-granted, durability)
	}
	o.finishBookkeeping(def)
	o.reset()
	env.OnCraftCompleted(o.actor, def)
}

func (o *Orchestrator) finishBookkeeping(def catalogs.CraftDef) {
	o.counts[def.ID]++
	if def.Experience > 0 {
		o.actor.Attributes.Add("experience", def.Experience)
	}
}

func (o *Orchestrator) reset() {
	o.state = Idle
	o.def = catalogs.CraftDef{}
	o.cost = cost.Cost{}
	o.containers = nil
	o.placement = nil
	o.task = 0
}
