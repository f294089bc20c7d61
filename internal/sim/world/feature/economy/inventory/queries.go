package inventory

import (
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

func HasItem(c *model.Container, item string, qty int) bool {
	return CountItem(c, item) >= qty
}

func CountItem(c *model.Container, item string) int {
	if c == nil || item == "" {
		return 0
	}
	n := 0
	for _, e := range c.Slots {
		if e.Item == item {
			n += e.Count
		}
	}
	return n
}

func HasItemInGroup(defs Defs, c *model.Container, group string, qty int) bool {
	return CountItemInGroup(defs, c, group) >= qty
}

func CountItemInGroup(defs Defs, c *model.Container, group string) int {
	if c == nil || group == "" {
		return 0
	}
	n := 0
	for _, e := range c.Slots {
		if d, ok := defs.Item(e.Item); ok && d.InGroup(group) {
			n += e.Count
		}
	}
	return n
}

// RemoveItemInGroup greedily removes up to qty units of any items carrying
// the group tag, in ascending slot order.
func RemoveItemInGroup(defs Defs, c *model.Container, group string, qty int) int {
	if c == nil || group == "" || qty <= 0 {
		return 0
	}
	removed := 0
	for _, i := range c.OccupiedSlots() {
		if removed >= qty {
			break
		}
		e := c.Slots[i]
		d, ok := defs.Item(e.Item)
		if !ok || !d.InGroup(group) {
			continue
		}
		take := qty - removed
		if take > e.Count {
			take = e.Count
		}
		e.Count -= take
		removed += take
		c.Set(i, e)
	}
	return removed
}

func FirstEmptySlot(c *model.Container) int {
	if c == nil {
		return InvalidSlot
	}
	for i := 0; i < c.Capacity; i++ {
		if _, occupied := c.At(i); !occupied {
			return i
		}
	}
	return InvalidSlot
}

func HasEmptySlot(c *model.Container) bool {
	return FirstEmptySlot(c) != InvalidSlot
}

// FirstSlotOf returns the first slot holding item with a count of at most
// maxQty (first-fit for stacking), or InvalidSlot.
func FirstSlotOf(c *model.Container, item string, maxQty int) int {
	if c == nil || item == "" {
		return InvalidSlot
	}
	for _, i := range c.OccupiedSlots() {
		e := c.Slots[i]
		if e.Item == item && e.Count <= maxQty {
			return i
		}
	}
	return InvalidSlot
}
