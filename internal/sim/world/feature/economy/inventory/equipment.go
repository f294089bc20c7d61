package inventory

import (
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// Equip moves the stack at invSlot into the equipment container slot named
// by its definition. An occupied equip slot is fully replaced, never merged:
// the previous occupant takes the freed inventory slot.
func Equip(defs Defs, inv, eq *model.Container, invSlot int) bool {
	if inv == nil || eq == nil || !inv.ValidSlot(invSlot) {
		return false
	}
	e, ok := inv.At(invSlot)
	if !ok {
		return false
	}
	def, ok := defs.Item(e.Item)
	if !ok || def.Category != catalogs.CategoryEquipment {
		return false
	}
	slot, ok := model.EquipSlotIndex(def.EquipSlot)
	if !ok {
		return false
	}
	prev, hadPrev := eq.At(slot)
	inv.Clear(invSlot)
	eq.Set(slot, e)
	if hadPrev {
		inv.Set(invSlot, prev)
	}
	return true
}

// Unequip moves the occupant of an equip slot back into the inventory; fails
// without mutating when nothing fits.
func Unequip(defs Defs, inv, eq *model.Container, equipSlot int) bool {
	if inv == nil || eq == nil || !eq.ValidSlot(equipSlot) {
		return false
	}
	e, ok := eq.At(equipSlot)
	if !ok {
		return false
	}
	if AddItem(defs, inv, e.Item, e.Count, e.Durability, e.Provenance) == InvalidSlot {
		return false
	}
	eq.Clear(equipSlot)
	return true
}

func GetEquippedAt(eq *model.Container, equipSlot int) (model.StackEntry, bool) {
	if eq == nil {
		return model.StackEntry{}, false
	}
	return eq.At(equipSlot)
}

func GetEquippedWeapon(eq *model.Container) (model.StackEntry, bool) {
	return GetEquippedAt(eq, model.EquipMainHand)
}

// EquippedInGroup reports whether any equipped item carries the group tag.
func EquippedInGroup(defs Defs, eq *model.Container, group string) bool {
	if eq == nil || group == "" {
		return false
	}
	for _, e := range eq.Slots {
		if d, ok := defs.Item(e.Item); ok && d.InGroup(group) {
			return true
		}
	}
	return false
}

// SpendUse decrements a usage-count item's durability by one use. A stack
// depleted to zero loses one unit and, when the definition names a residual
// container item, gains one unit of it in place.
func SpendUse(defs Defs, c *model.Container, slot int) bool {
	if c == nil || !c.ValidSlot(slot) {
		return false
	}
	e, ok := c.At(slot)
	if !ok {
		return false
	}
	def, ok := defs.Item(e.Item)
	if !ok || def.DurabilityKind != catalogs.DurabilityUses {
		return false
	}
	e.Durability--
	if e.Durability > 0 {
		c.Set(slot, e)
		return true
	}
	e.Count--
	if e.Count > 0 {
		e.Durability = def.Durability
		c.Set(slot, e)
		return true
	}
	c.Clear(slot)
	if def.ResidualItem != "" {
		if residual, ok := defs.Item(def.ResidualItem); ok {
			c.Set(slot, model.StackEntry{
				Item:       residual.ID,
				Count:      1,
				Durability: residual.Durability,
				Provenance: model.NewProvenance(),
			})
		}
	}
	return true
}
