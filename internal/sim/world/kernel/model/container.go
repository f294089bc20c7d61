package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"frontiercraft.ai/internal/protocol"
)

type ContainerKind string

const (
	ContainerGeneric   ContainerKind = "GENERIC"
	ContainerEquipment ContainerKind = "EQUIPMENT"
	ContainerStorage   ContainerKind = "STORAGE"
	ContainerBag       ContainerKind = "BAG"
)

// Equip slot indices. Equipment containers index slots by these values
// rather than sequentially.
const (
	EquipHead = iota
	EquipBody
	EquipLegs
	EquipFeet
	EquipMainHand
	EquipOffHand
	EquipSlotCount
)

var equipSlotIndex = map[string]int{
	"HEAD":      EquipHead,
	"BODY":      EquipBody,
	"LEGS":      EquipLegs,
	"FEET":      EquipFeet,
	"MAIN_HAND": EquipMainHand,
	"OFF_HAND":  EquipOffHand,
}

func EquipSlotIndex(name string) (int, bool) {
	i, ok := equipSlotIndex[name]
	return i, ok
}

// StackEntry is one occupied slot: item id, quantity >= 1, durability (its
// meaning depends on the item's durability kind) and a provenance id that
// stays stable for the physical unit across merges and splits.
type StackEntry struct {
	Item       string
	Count      int
	Durability float64
	Provenance string
}

// NewProvenance mints a provenance id for a freshly created stack.
func NewProvenance() string { return uuid.NewString() }

// Container is the authoritative slot->stack state for one owner. The slot
// map is sparse: absence of an index means empty, and no entry ever holds
// Count <= 0.
type Container struct {
	Kind     ContainerKind
	Owner    string
	Capacity int
	Slots    map[int]StackEntry
}

func NewContainer(kind ContainerKind, owner string, capacity int) *Container {
	if kind == ContainerEquipment {
		capacity = EquipSlotCount
	}
	return &Container{
		Kind:     kind,
		Owner:    owner,
		Capacity: capacity,
		Slots:    map[int]StackEntry{},
	}
}

func (c *Container) ID() string { return ContainerID(c.Kind, c.Owner) }

func ContainerID(kind ContainerKind, owner string) string {
	return fmt.Sprintf("%s:%s", kind, owner)
}

func (c *Container) ValidSlot(slot int) bool {
	return slot >= 0 && slot < c.Capacity
}

func (c *Container) At(slot int) (StackEntry, bool) {
	e, ok := c.Slots[slot]
	return e, ok
}

// Set writes a slot entry; entries with Count <= 0 are deleted, never stored.
func (c *Container) Set(slot int, e StackEntry) {
	if !c.ValidSlot(slot) {
		return
	}
	if e.Count <= 0 || e.Item == "" {
		delete(c.Slots, slot)
		return
	}
	c.Slots[slot] = e
}

func (c *Container) Clear(slot int) { delete(c.Slots, slot) }

// OccupiedSlots returns the occupied indices in ascending order. All scans
// use this so mutation order is deterministic.
func (c *Container) OccupiedSlots() []int {
	out := make([]int, 0, len(c.Slots))
	for i := range c.Slots {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (c *Container) SlotList() []protocol.SlotStack {
	out := make([]protocol.SlotStack, 0, len(c.Slots))
	for _, i := range c.OccupiedSlots() {
		e := c.Slots[i]
		out = append(out, protocol.SlotStack{
			Slot:       i,
			Item:       e.Item,
			Count:      e.Count,
			Durability: e.Durability,
			Provenance: e.Provenance,
		})
	}
	return out
}
