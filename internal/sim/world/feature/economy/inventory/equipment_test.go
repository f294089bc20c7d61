package inventory

import (
	"testing"

	"frontiercraft.ai/internal/sim/world/kernel/model"
)

func TestEquipMovesToDeclaredSlot(t *testing.T) {
	defs := testDefs()
	inv := newInv(8)
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	AddItemAt(defs, inv, "STONE_AXE", 2, 1, 300, "")

	if !Equip(defs, inv, eq, 2) {
		t.Fatalf("equip failed")
	}
	if _, ok := inv.At(2); ok {
		t.Fatalf("inventory slot not cleared")
	}
	e, ok := eq.At(model.EquipMainHand)
	if !ok || e.Item != "STONE_AXE" {
		t.Fatalf("main hand = %+v ok=%v", e, ok)
	}
}

func TestEquipReplacesNeverMerges(t *testing.T) {
	defs := testDefs()
	inv := newInv(8)
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	eq.Set(model.EquipMainHand, model.StackEntry{Item: "STONE_AXE", Count: 1, Durability: 50, Provenance: "old"})
	AddItemAt(defs, inv, "STONE_AXE", 0, 1, 300, "new")

	if !Equip(defs, inv, eq, 0) {
		t.Fatalf("equip failed")
	}
	e, _ := eq.At(model.EquipMainHand)
	if e.Provenance != "new" || e.Count != 1 {
		t.Fatalf("equip merged instead of replacing: %+v", e)
	}
	prev, ok := inv.At(0)
	if !ok || prev.Provenance != "old" {
		t.Fatalf("previous occupant not returned to freed slot: %+v ok=%v", prev, ok)
	}
}

func TestEquipRejectsNonEquipment(t *testing.T) {
	defs := testDefs()
	inv := newInv(8)
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	AddItemAt(defs, inv, "WOOD", 0, 1, 0, "")

	if Equip(defs, inv, eq, 0) {
		t.Fatalf("equipped a BASIC item")
	}
}

func TestUnequipFailsWithoutMutationWhenInventoryFull(t *testing.T) {
	defs := testDefs()
	inv := newInv(1)
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	AddItemAt(defs, inv, "WOOD", 0, 50, 0, "")
	eq.Set(model.EquipMainHand, model.StackEntry{Item: "STONE_AXE", Count: 1, Durability: 100, Provenance: "p"})

	if Unequip(defs, inv, eq, model.EquipMainHand) {
		t.Fatalf("unequip into full inventory should fail")
	}
	if _, ok := eq.At(model.EquipMainHand); !ok {
		t.Fatalf("failed unequip removed the equipped item")
	}
}

func TestEquippedInGroup(t *testing.T) {
	defs := testDefs()
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	if EquippedInGroup(defs, eq, "AXE") {
		t.Fatalf("empty equipment matched group")
	}
	eq.Set(model.EquipMainHand, model.StackEntry{Item: "STONE_AXE", Count: 1, Durability: 100, Provenance: "p"})
	if !EquippedInGroup(defs, eq, "AXE") {
		t.Fatalf("equipped axe not found by group")
	}
}
