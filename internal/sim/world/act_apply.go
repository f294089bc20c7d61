package world

import (
	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/feature/actions"
	"frontiercraft.ai/internal/sim/world/feature/crafting"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// actFail builds an ACT_FAIL event. Codes outside the registered taxonomy
// are coerced to E_INTERNAL so clients never see an undocumented code.
func actFail(tick uint64, code string, kv ...string) protocol.Event {
	if !protocol.IsKnownCode(code) {
		code = protocol.ErrInternal
	}
	e := protocol.Event{"t": tick, "type": "ACT_FAIL", "code": code}
	for i := 0; i+1 < len(kv); i += 2 {
		e[kv[i]] = kv[i+1]
	}
	return e
}

func (w *World) applyAct(actorID string, act protocol.ActMsg, now uint64) bool {
	a, ok := w.actors[actorID]
	if !ok {
		return false
	}
	orch := w.orchestrators[actorID]

	switch act.Verb {
	case protocol.VerbMove:
		a.Pos = model.Vec3i{X: act.To[0], Y: act.To[1], Z: act.To[2]}
		a.Moving = true
		orch.OnActorMoved(w)
	case protocol.VerbInteract:
		w.applyInteract(a, act, now)
	case protocol.VerbMerge:
		w.applyMerge(a, act, now)
	case protocol.VerbCraft, protocol.VerbBuildStart:
		w.applyCraft(a, orch, act, now)
	case protocol.VerbBuildConfirm:
		w.applyBuildConfirm(a, orch, act, now)
	case protocol.VerbCancel:
		if !orch.Cancel(w) {
			w.CancelBusy(a)
		}
	case protocol.VerbMoveSlot:
		count := act.Count
		if count <= 0 {
			if e, ok := a.Inventory.At(act.Slot); ok {
				count = e.Count
			}
		}
		if !inventory.MoveSlot(w, a.Inventory, act.Slot, act.OtherSlot, count) {
			a.AddEvent(actFail(now, protocol.ErrInvalidSlot))
		}
	case protocol.VerbSwapSlots:
		inventory.SwapSlots(a.Inventory, act.Slot, act.OtherSlot)
	case protocol.VerbEquip:
		if !inventory.Equip(w, a.Inventory, a.Equipment, act.Slot) {
			a.AddEvent(actFail(now, protocol.ErrInvalidSlot))
		}
	case protocol.VerbUnequip:
		if !inventory.Unequip(w, a.Inventory, a.Equipment, act.Slot) {
			a.AddEvent(actFail(now, protocol.ErrInvalidSlot))
		}
	default:
		a.AddEvent(actFail(now, protocol.ErrBadRequest, "verb", act.Verb))
		return false
	}
	return true
}

// boundFor resolves the declared action list for an interact target. Slot
// targets get the built-in consume action appended as a trailing candidate
// so consumables work without explicit bindings.
func (w *World) boundFor(act protocol.ActMsg, a *model.Actor) ([]actions.Spec, actions.Target, string) {
	if act.TargetID != "" {
		o, ok := w.objects[act.TargetID]
		if !ok || o.Provisional {
			return nil, actions.Target{}, protocol.ErrInvalidTarget
		}
		if !a.Pos.Within(o.Pos, w.tun.UseRange) {
			return nil, actions.Target{}, protocol.ErrBlocked
		}
		def, ok := w.Craft(o.Craft)
		if !ok {
			return nil, actions.Target{}, protocol.ErrInvalidTarget
		}
		a.FaceToward(o.Pos)
		return w.reg.Bound(def.Actions), actions.Target{Object: o}, ""
	}

	e, ok := a.Inventory.At(act.Slot)
	if !ok {
		return nil, actions.Target{}, protocol.ErrInvalidSlot
	}
	def, ok := w.Item(e.Item)
	if !ok {
		return nil, actions.Target{}, protocol.ErrInvalidTarget
	}
	bound := w.reg.Bound(def.Actions)
	if consume, ok := w.reg.Resolve(catalogs.ActionBinding{Kind: catalogs.ActionAuto, Name: "consume"}); ok {
		bound = append(bound, consume)
	}
	return bound, actions.Target{Container: a.Inventory, Slot: act.Slot}, ""
}

func (w *World) applyInteract(a *model.Actor, act protocol.ActMsg, now uint64) {
	if w.IsBusy(a) {
		a.AddEvent(actFail(now, protocol.ErrBlocked, "message", "busy"))
		return
	}
	bound, target, failCode := w.boundFor(act, a)
	if failCode != "" {
		a.AddEvent(actFail(now, failCode))
		return
	}

	if act.Action != "" {
		// Manual: explicit gesture names the action.
		for _, s := range bound {
			if s.Name != act.Action || s.Kind != actions.Manual {
				continue
			}
			if !s.Applicable(w, a, target) {
				a.AddEvent(actFail(now, protocol.ErrBlocked, "action", s.Name))
				return
			}
			spec := s
			w.TriggerProgressBusy(a, w.tun.Actor.BusyTicks, spec.Cancelable, func() {
				spec.Invoke(w, a, target)
				a.AddEvent(protocol.Event{"t": w.tick.Load(), "type": "ACTION_DONE", "action": spec.Name})
			})
			return
		}
		a.AddEvent(actFail(now, protocol.ErrInvalidTarget, "action", act.Action))
		return
	}

	// Auto: first eligible candidate in declaration order wins.
	autos := bound[:0:0]
	for _, s := range bound {
		if s.Kind == actions.Auto {
			autos = append(autos, s)
		}
	}
	s, ok := actions.FirstEligible(w, a, target, autos)
	if !ok {
		a.AddEvent(actFail(now, protocol.ErrInvalidTarget, "message", "no applicable action"))
		return
	}
	s.Invoke(w, a, target)
	a.AddEvent(protocol.Event{"t": now, "type": "ACTION_DONE", "action": s.Name})
}

func (w *World) applyMerge(a *model.Actor, act protocol.ActMsg, now uint64) {
	if w.IsBusy(a) {
		a.AddEvent(actFail(now, protocol.ErrBlocked, "message", "busy"))
		return
	}
	e, ok := a.Inventory.At(act.Slot)
	if !ok {
		a.AddEvent(actFail(now, protocol.ErrInvalidSlot))
		return
	}
	def, ok := w.Item(e.Item)
	if !ok {
		a.AddEvent(actFail(now, protocol.ErrInvalidTarget))
		return
	}

	var merges []actions.Spec
	for _, s := range w.reg.Bound(def.Actions) {
		if s.Kind == actions.Merge {
			merges = append(merges, s)
		}
	}

	base := actions.Target{Container: a.Inventory, Slot: act.Slot}
	switch act.OtherKind {
	case "SLOT":
		base.OtherContainer = a.Inventory
		base.OtherSlot = act.OtherSlot
	case "OBJECT":
		o, ok := w.objects[act.TargetID]
		if !ok || o.Provisional || !a.Pos.Within(o.Pos, w.tun.UseRange) {
			a.AddEvent(actFail(now, protocol.ErrInvalidTarget))
			return
		}
		base.OtherObject = o
	}

	for _, s := range merges {
		target := base
		if base.OtherContainer == nil && base.OtherObject == nil {
			// Single-operand form: bind the nearest matching world object.
			resolved, ok := actions.ResolveMergeTarget(w, s, a, base)
			if !ok {
				continue
			}
			target = resolved
		}
		if !s.Applicable(w, a, target) {
			continue
		}
		if target.OtherObject != nil {
			a.FaceToward(target.OtherObject.Pos)
		}
		spec, bound := s, target
		w.TriggerBusy(a, w.tun.Actor.BusyTicks, spec.Cancelable, func() {
			spec.Invoke(w, a, bound)
			a.AddEvent(protocol.Event{"t": w.tick.Load(), "type": "ACTION_DONE", "action": spec.Name})
		})
		return
	}
	a.AddEvent(actFail(now, protocol.ErrInvalidTarget, "message", "no applicable merge"))
}

func (w *World) applyCraft(a *model.Actor, orch *crafting.Orchestrator, act protocol.ActMsg, now uint64) {
	def, ok := w.Craft(act.CraftID)
	if !ok {
		a.AddEvent(actFail(now, protocol.ErrBadRequest, "craft_id", act.CraftID))
		return
	}
	if orch.State() != crafting.Idle {
		a.AddEvent(actFail(now, protocol.ErrConflict, "craft_id", act.CraftID))
		return
	}
	if !orch.Start(w, def, []*model.Container{a.Inventory}) {
		a.AddEvent(actFail(now, protocol.ErrNoResource, "craft_id", act.CraftID))
		return
	}
	switch orch.State() {
	case crafting.Placing:
		a.AddEvent(protocol.Event{"t": now, "type": "BUILD_PLACING", "craft_id": def.ID})
	case crafting.TimedCrafting:
		a.AddEvent(protocol.Event{"t": now, "type": "CRAFT_STARTED", "craft_id": def.ID, "eta_ticks": def.DurationTicks})
	}
}

func (w *World) applyBuildConfirm(a *model.Actor, orch *crafting.Orchestrator, act protocol.ActMsg, now uint64) {
	pos := model.Vec3i{X: act.Pos[0], Y: act.Pos[1], Z: act.Pos[2]}
	if !orch.ConfirmPlacement(w, pos) {
		a.AddEvent(actFail(now, protocol.ErrBlocked, "craft_id", act.CraftID))
		return
	}
	if orch.State() == crafting.TimedCrafting {
		a.AddEvent(protocol.Event{"t": now, "type": "BUILD_STARTED", "craft_id": act.CraftID})
	}
}
