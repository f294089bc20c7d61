package world

import (
	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/tasks"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// World implements the feature Env interfaces (cost.Env, actions.Env,
// crafting.Env) directly; features receive it by interface and tests stub
// them.

func (w *World) Item(id string) (catalogs.ItemDef, bool) {
	d, ok := w.cats.Items.Defs[id]
	return d, ok
}

func (w *World) Craft(id string) (catalogs.CraftDef, bool) {
	d, ok := w.cats.Crafts.ByID[id]
	return d, ok
}

func (w *World) UseRange() int { return w.tun.UseRange }

func (w *World) NearGroup(pos model.Vec3i, group string, dist int) bool {
	return w.FindNearestWithGroup(group, pos, dist) != nil
}

func (w *World) NearestWithGroup(pos model.Vec3i, group string, dist int) *model.WorldObject {
	return w.FindNearestWithGroup(group, pos, dist)
}

func (w *World) CountWorldObjects(craftID string) int {
	return w.CountMatchingWorldObjects(craftID)
}

func (w *World) Schedule(kind tasks.Kind, ticks int, fire func()) tasks.Handle {
	return w.sched.After(kind, ticks, fire)
}

func (w *World) CancelTask(h tasks.Handle) bool { return w.sched.Cancel(h) }

func (w *World) TaskProgress(h tasks.Handle) (float64, bool) { return w.sched.Progress(h) }

func (w *World) TaskRemaining(h tasks.Handle) int { return w.sched.Remaining(h) }

// SpawnPlacement creates the provisional placement handle for a buildable:
// tracked, but invisible to world queries until committed.
func (w *World) SpawnPlacement(def catalogs.CraftDef) *model.WorldObject {
	o := &model.WorldObject{
		ID:          w.newObjectID(),
		Craft:       def.ID,
		Groups:      def.Groups,
		Provisional: true,
	}
	w.objects[o.ID] = o
	return o
}

// PlacementLegal is the placement-legality callback: the position must not
// be occupied by another committed object.
func (w *World) PlacementLegal(o *model.WorldObject, pos model.Vec3i) bool {
	if o == nil {
		return false
	}
	for _, other := range w.objects {
		if other.Provisional || other.ID == o.ID {
			continue
		}
		if other.Pos == pos {
			return false
		}
	}
	return true
}

func (w *World) CommitPlacement(o *model.WorldObject) {
	if o == nil {
		return
	}
	o.Provisional = false
	w.objects[o.ID] = o
}

func (w *World) DiscardPlacement(o *model.WorldObject) {
	if o == nil {
		return
	}
	delete(w.objects, o.ID)
}

// DropResult spawns produced units as a ground-item object when no
// container can take them.
func (w *World) DropResult(a *model.Actor, item string, qty int, durability float64) {
	def, _ := w.Item(item)
	o := &model.WorldObject{
		ID:     w.newObjectID(),
		Groups: append([]string{"GROUND_ITEM"}, def.Groups...),
		Pos:    a.Pos,
	}
	w.objects[o.ID] = o
	ground := w.GetContainer(model.ContainerStorage, o.ID)
	inventory.AddItem(w, ground, item, qty, durability, "")
	a.AddEvent(protocol.Event{"t": w.tick.Load(), "type": "ITEM_DROPPED", "item": item, "count": qty, "object": o.ID})
}

func (w *World) EnergyAttr() string { return w.tun.Actor.EnergyAttr }

func (w *World) OnCraftCompleted(a *model.Actor, def catalogs.CraftDef) {
	now := w.tick.Load()
	a.AddEvent(protocol.Event{"t": now, "type": "CRAFT_DONE", "craft_id": def.ID})
	w.audit(AuditEntry{Tick: now, Actor: a.ID, Action: "CRAFT_DONE", CraftID: def.ID, Item: def.Result, Count: def.Quantity})
}

func (w *World) OnBuildCompleted(a *model.Actor, o *model.WorldObject) {
	now := w.tick.Load()
	a.AddEvent(protocol.Event{"t": now, "type": "BUILD_DONE", "craft_id": o.Craft, "object": o.ID})
	w.audit(AuditEntry{Tick: now, Actor: a.ID, Action: "BUILD_DONE", CraftID: o.Craft, Object: o.ID})
}

func (w *World) OnSelectionCancelled(a *model.Actor) {
	a.AddEvent(protocol.Event{"t": w.tick.Load(), "type": "SELECTION_CANCELLED"})
}
