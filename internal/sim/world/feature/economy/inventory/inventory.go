package inventory

import (
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// Defs is the catalog surface the container operations need.
type Defs interface {
	Item(id string) (catalogs.ItemDef, bool)
}

// InvalidSlot is the failure sentinel for add operations. There is no error
// path for ordinary "can't fit" conditions; callers pre-check with the query
// predicates.
const InvalidSlot = -1

func stackMax(defs Defs, item string) int {
	if d, ok := defs.Item(item); ok {
		return d.StackMax
	}
	return 1
}

// AddItem places qty units into the first stack of the same item with
// headroom, else the first empty slot. Merging recomputes durability as the
// quantity-weighted mean of the two stacks; the receiving stack keeps its
// provenance. Returns the slot index or InvalidSlot when nothing fits.
func AddItem(defs Defs, c *model.Container, item string, qty int, durability float64, provenance string) int {
	if c == nil || item == "" || qty <= 0 {
		return InvalidSlot
	}
	max := stackMax(defs, item)
	for _, i := range c.OccupiedSlots() {
		e := c.Slots[i]
		if e.Item != item || e.Count > max-qty {
			continue
		}
		mergeInto(&e, qty, durability)
		c.Set(i, e)
		return i
	}
	if qty > max {
		return InvalidSlot
	}
	for i := 0; i < c.Capacity; i++ {
		if _, occupied := c.At(i); occupied {
			continue
		}
		if provenance == "" {
			provenance = model.NewProvenance()
		}
		c.Set(i, model.StackEntry{Item: item, Count: qty, Durability: durability, Provenance: provenance})
		return i
	}
	return InvalidSlot
}

// AddItemAt is the slot-indexed add used by explicit slot UI operations. The
// target must be empty or hold the same item with headroom.
func AddItemAt(defs Defs, c *model.Container, item string, slot, qty int, durability float64, provenance string) bool {
	if c == nil || item == "" || qty <= 0 || !c.ValidSlot(slot) {
		return false
	}
	max := stackMax(defs, item)
	if e, occupied := c.At(slot); occupied {
		if e.Item != item || e.Count > max-qty {
			return false
		}
		mergeInto(&e, qty, durability)
		c.Set(slot, e)
		return true
	}
	if qty > max {
		return false
	}
	if provenance == "" {
		provenance = model.NewProvenance()
	}
	c.Set(slot, model.StackEntry{Item: item, Count: qty, Durability: durability, Provenance: provenance})
	return true
}

func mergeInto(e *model.StackEntry, qty int, durability float64) {
	total := e.Count + qty
	e.Durability = (e.Durability*float64(e.Count) + durability*float64(qty)) / float64(total)
	e.Count = total
}

// RemoveItem greedily removes up to qty units across stacks in ascending
// slot order, deleting emptied slots. It removes whatever is available and
// returns the amount actually removed; callers pre-check with HasItem.
func RemoveItem(c *model.Container, item string, qty int) int {
	if c == nil || item == "" || qty <= 0 {
		return 0
	}
	removed := 0
	for _, i := range c.OccupiedSlots() {
		if removed >= qty {
			break
		}
		e := c.Slots[i]
		if e.Item != item {
			continue
		}
		take := qty - removed
		if take > e.Count {
			take = e.Count
		}
		e.Count -= take
		removed += take
		c.Set(i, e) // deletes when emptied
	}
	return removed
}

// RemoveItemAt removes up to qty units from one slot.
func RemoveItemAt(c *model.Container, slot, qty int) int {
	if c == nil || qty <= 0 || !c.ValidSlot(slot) {
		return 0
	}
	e, ok := c.At(slot)
	if !ok {
		return 0
	}
	take := qty
	if take > e.Count {
		take = e.Count
	}
	e.Count -= take
	c.Set(slot, e)
	return take
}

// MoveSlot moves qty units from one slot to another in the same container,
// merging when the destination holds the same item. Split halves share the
// source provenance.
func MoveSlot(defs Defs, c *model.Container, from, to, qty int) bool {
	if c == nil || from == to || !c.ValidSlot(from) || !c.ValidSlot(to) {
		return false
	}
	src, ok := c.At(from)
	if !ok || qty <= 0 || qty > src.Count {
		return false
	}
	if !AddItemAt(defs, c, src.Item, to, qty, src.Durability, src.Provenance) {
		return false
	}
	src.Count -= qty
	c.Set(from, src)
	return true
}

// SwapSlots unconditionally exchanges two slot contents; empty slots are
// valid operands.
func SwapSlots(c *model.Container, a, b int) {
	if c == nil || !c.ValidSlot(a) || !c.ValidSlot(b) || a == b {
		return
	}
	ea, okA := c.At(a)
	eb, okB := c.At(b)
	c.Clear(a)
	c.Clear(b)
	if okB {
		c.Set(a, eb)
	}
	if okA {
		c.Set(b, ea)
	}
}

// UpdateDurabilityTick decays durability by hours for every occupied slot
// whose item spoils (always) or wears by time while equipped (equipment
// containers only). A stack crossing <= 0 is removed; if its definition
// names a residual container item, one unit of that item takes the slot.
func UpdateDurabilityTick(defs Defs, c *model.Container, hours float64) {
	if c == nil || hours <= 0 {
		return
	}
	for _, i := range c.OccupiedSlots() {
		e := c.Slots[i]
		def, ok := defs.Item(e.Item)
		if !ok {
			continue
		}
		switch def.DurabilityKind {
		case catalogs.DurabilitySpoil:
		case catalogs.DurabilityTime:
			if c.Kind != model.ContainerEquipment {
				continue
			}
		default:
			continue
		}
		e.Durability -= hours
		if e.Durability > 0 {
			c.Set(i, e)
			continue
		}
		c.Clear(i)
		if def.ResidualItem == "" {
			continue
		}
		residual, ok := defs.Item(def.ResidualItem)
		if !ok {
			continue
		}
		c.Set(i, model.StackEntry{
			Item:       residual.ID,
			Count:      1,
			Durability: residual.Durability,
			Provenance: model.NewProvenance(),
		})
	}
}
