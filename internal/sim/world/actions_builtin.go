package world

import (
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/feature/actions"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// Built-in actions available to every catalog. Closures capture the world
// where they need surfaces beyond actions.Env.
func (w *World) registerBuiltinActions() {
	w.reg.Register(actions.Spec{
		Name: "consume",
		Kind: actions.Auto,
		CanApply: func(env actions.Env, a *model.Actor, t actions.Target) bool {
			if t.Container == nil {
				return false
			}
			e, ok := t.Container.At(t.Slot)
			if !ok {
				return false
			}
			d, ok := env.Item(e.Item)
			return ok && d.Category == catalogs.CategoryConsumable
		},
		Apply: func(env actions.Env, a *model.Actor, t actions.Target) {
			e, _ := t.Container.At(t.Slot)
			d, _ := env.Item(e.Item)
			for k, v := range d.Effects {
				a.Attributes.Add(k, v)
			}
			if d.DurabilityKind == catalogs.DurabilityUses {
				inventory.SpendUse(env, t.Container, t.Slot)
			} else {
				inventory.RemoveItemAt(t.Container, t.Slot, 1)
			}
		},
	})

	// deposit: merge an inventory stack into a storage-carrying object.
	w.reg.Register(actions.Spec{
		Name:       "deposit",
		Kind:       actions.Merge,
		MergeGroup: "STORAGE",
		Apply: func(env actions.Env, a *model.Actor, t actions.Target) {
			if t.OtherObject == nil || t.Container == nil {
				return
			}
			e, ok := t.Container.At(t.Slot)
			if !ok {
				return
			}
			store := w.GetContainer(model.ContainerStorage, t.OtherObject.ID)
			if inventory.AddItem(env, store, e.Item, e.Count, e.Durability, e.Provenance) == inventory.InvalidSlot {
				return
			}
			t.Container.Clear(t.Slot)
		},
	})

	// combine: merge two stacks of the same item across slots.
	w.reg.Register(actions.Spec{
		Name: "combine",
		Kind: actions.Merge,
		CanApply: func(env actions.Env, a *model.Actor, t actions.Target) bool {
			if t.Container == nil || t.OtherContainer == nil {
				return false
			}
			// An aliased operand would merge the stack into itself and
			// then clear it, losing every unit.
			if t.Container == t.OtherContainer && t.Slot == t.OtherSlot {
				return false
			}
			src, okSrc := t.Container.At(t.Slot)
			dst, okDst := t.OtherContainer.At(t.OtherSlot)
			return okSrc && okDst && src.Item == dst.Item
		},
		Apply: func(env actions.Env, a *model.Actor, t actions.Target) {
			src, _ := t.Container.At(t.Slot)
			if inventory.AddItemAt(env, t.OtherContainer, src.Item, t.OtherSlot, src.Count, src.Durability, src.Provenance) {
				t.Container.Clear(t.Slot)
			}
		},
	})
}
