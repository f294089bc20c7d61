package inventory

import (
	"testing"

	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

type stubDefs map[string]catalogs.ItemDef

func (s stubDefs) Item(id string) (catalogs.ItemDef, bool) {
	d, ok := s[id]
	return d, ok
}

func testDefs() stubDefs {
	return stubDefs{
		"WOOD":      {ID: "WOOD", Category: catalogs.CategoryBasic, StackMax: 50, DurabilityKind: catalogs.DurabilityNone},
		"STONE":     {ID: "STONE", Category: catalogs.CategoryBasic, StackMax: 50, DurabilityKind: catalogs.DurabilityNone},
		"BERRIES":   {ID: "BERRIES", Category: catalogs.CategoryConsumable, StackMax: 20, DurabilityKind: catalogs.DurabilitySpoil, Durability: 48},
		"WATER_JUG": {ID: "WATER_JUG", Category: catalogs.CategoryConsumable, StackMax: 5, DurabilityKind: catalogs.DurabilityUses, Durability: 4, ResidualItem: "EMPTY_JUG"},
		"EMPTY_JUG": {ID: "EMPTY_JUG", Category: catalogs.CategoryBasic, StackMax: 5, DurabilityKind: catalogs.DurabilityNone},
		"STONE_AXE": {ID: "STONE_AXE", Category: catalogs.CategoryEquipment, StackMax: 1, DurabilityKind: catalogs.DurabilityTime, Durability: 336, EquipSlot: "MAIN_HAND", Groups: []string{"TOOL", "AXE"}},
	}
}

func newInv(capacity int) *model.Container {
	return model.NewContainer(model.ContainerGeneric, "A1", capacity)
}

func TestAddItemMergesIntoExistingStackFirst(t *testing.T) {
	defs := testDefs()
	c := newInv(8)

	slot := AddItem(defs, c, "WOOD", 10, 0, "")
	if slot != 0 {
		t.Fatalf("first add slot=%d want 0", slot)
	}
	slot = AddItem(defs, c, "WOOD", 5, 0, "")
	if slot != 0 {
		t.Fatalf("second add slot=%d want merge into 0", slot)
	}
	if got := CountItem(c, "WOOD"); got != 15 {
		t.Fatalf("count=%d want 15", got)
	}
	if occ := len(c.OccupiedSlots()); occ != 1 {
		t.Fatalf("occupied=%d want 1", occ)
	}
}

func TestAddItemOverflowsToEmptySlot(t *testing.T) {
	defs := testDefs()
	c := newInv(8)

	AddItem(defs, c, "WOOD", 48, 0, "")
	slot := AddItem(defs, c, "WOOD", 5, 0, "")
	if slot != 1 {
		t.Fatalf("overflow slot=%d want 1", slot)
	}
	if got := CountItem(c, "WOOD"); got != 53 {
		t.Fatalf("count=%d want 53", got)
	}
}

func TestAddItemFailsWhenFull(t *testing.T) {
	defs := testDefs()
	c := newInv(1)

	AddItem(defs, c, "WOOD", 50, 0, "")
	if slot := AddItem(defs, c, "STONE", 1, 0, ""); slot != InvalidSlot {
		t.Fatalf("add into full container slot=%d want InvalidSlot", slot)
	}
	// The failed add must not have mutated anything.
	if got := CountItem(c, "WOOD"); got != 50 {
		t.Fatalf("count=%d want 50", got)
	}
}

func TestAddItemMintsProvenance(t *testing.T) {
	defs := testDefs()
	c := newInv(4)
	slot := AddItem(defs, c, "WOOD", 1, 0, "")
	e, _ := c.At(slot)
	if e.Provenance == "" {
		t.Fatalf("fresh stack has no provenance")
	}
}

func TestMergeDurabilityIsWeightedMean(t *testing.T) {
	defs := testDefs()
	c := newInv(8)

	AddItem(defs, c, "BERRIES", 2, 40, "")
	AddItem(defs, c, "BERRIES", 6, 20, "")

	e, ok := c.At(0)
	if !ok {
		t.Fatalf("no stack at slot 0")
	}
	want := (40.0*2 + 20.0*6) / 8.0
	if e.Durability != want {
		t.Fatalf("merged durability=%v want %v", e.Durability, want)
	}
	if e.Count != 8 {
		t.Fatalf("merged count=%d want 8", e.Count)
	}
}

func TestMergeKeepsReceiverProvenance(t *testing.T) {
	defs := testDefs()
	c := newInv(8)

	AddItem(defs, c, "BERRIES", 2, 40, "prov-a")
	AddItem(defs, c, "BERRIES", 3, 40, "prov-b")

	e, _ := c.At(0)
	if e.Provenance != "prov-a" {
		t.Fatalf("provenance=%q want receiver's prov-a", e.Provenance)
	}
}

func TestRemoveItemGreedyAscendingAndDeletesEmptied(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "WOOD", 2, 10, 0, "")
	AddItemAt(defs, c, "WOOD", 5, 10, 0, "")

	removed := RemoveItem(c, "WOOD", 12)
	if removed != 12 {
		t.Fatalf("removed=%d want 12", removed)
	}
	if _, ok := c.At(2); ok {
		t.Fatalf("slot 2 should be deleted")
	}
	e, ok := c.At(5)
	if !ok || e.Count != 8 {
		t.Fatalf("slot 5 = %+v ok=%v want count 8", e, ok)
	}
}

func TestRemoveItemPartialWhenShort(t *testing.T) {
	defs := testDefs()
	c := newInv(4)
	AddItem(defs, c, "WOOD", 3, 0, "")
	if removed := RemoveItem(c, "WOOD", 10); removed != 3 {
		t.Fatalf("removed=%d want 3", removed)
	}
	if got := CountItem(c, "WOOD"); got != 0 {
		t.Fatalf("count=%d want 0", got)
	}
}

func TestMoveSlotSplitSharesProvenance(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "BERRIES", 0, 10, 30, "prov-x")

	if !MoveSlot(defs, c, 0, 3, 4) {
		t.Fatalf("split move failed")
	}
	src, _ := c.At(0)
	dst, _ := c.At(3)
	if src.Count != 6 || dst.Count != 4 {
		t.Fatalf("split counts src=%d dst=%d", src.Count, dst.Count)
	}
	if dst.Provenance != "prov-x" {
		t.Fatalf("split half provenance=%q want prov-x", dst.Provenance)
	}
	if dst.Durability != 30 {
		t.Fatalf("split half durability=%v want 30", dst.Durability)
	}
}

func TestMoveSlotRejoinConservesQuantity(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "BERRIES", 0, 10, 30, "")
	MoveSlot(defs, c, 0, 3, 4)
	if !MoveSlot(defs, c, 3, 0, 4) {
		t.Fatalf("rejoin move failed")
	}
	e, ok := c.At(0)
	if !ok || e.Count != 10 {
		t.Fatalf("rejoined count=%d want 10", e.Count)
	}
	if _, ok := c.At(3); ok {
		t.Fatalf("source of rejoin should be empty")
	}
}

func TestMoveSlotRejectsMismatchedDestination(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "WOOD", 0, 5, 0, "")
	AddItemAt(defs, c, "STONE", 1, 5, 0, "")
	if MoveSlot(defs, c, 0, 1, 2) {
		t.Fatalf("move onto different item should fail")
	}
	if CountItem(c, "WOOD") != 5 || CountItem(c, "STONE") != 5 {
		t.Fatalf("failed move mutated state")
	}
}

func TestSwapSlotsWithEmptyOperand(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "WOOD", 0, 5, 0, "")

	SwapSlots(c, 0, 4)
	if _, ok := c.At(0); ok {
		t.Fatalf("slot 0 should be empty after swap")
	}
	e, ok := c.At(4)
	if !ok || e.Item != "WOOD" {
		t.Fatalf("slot 4 = %+v", e)
	}
}

func TestDurabilityTickSpoilsAndLeavesResidual(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "BERRIES", 0, 3, 0.5, "")
	AddItemAt(defs, c, "WOOD", 1, 3, 0, "")

	UpdateDurabilityTick(defs, c, 1.0)

	if _, ok := c.At(0); ok {
		t.Fatalf("spoiled stack without residual should vanish")
	}
	if e, ok := c.At(1); !ok || e.Count != 3 {
		t.Fatalf("non-perishable stack touched: %+v ok=%v", e, ok)
	}
}

func TestDurabilityTickTimeWearOnlyWhileEquipped(t *testing.T) {
	defs := testDefs()
	inv := newInv(8)
	eq := model.NewContainer(model.ContainerEquipment, "A1", 0)
	AddItemAt(defs, inv, "STONE_AXE", 0, 1, 10, "")
	eq.Set(model.EquipMainHand, model.StackEntry{Item: "STONE_AXE", Count: 1, Durability: 10, Provenance: "p"})

	UpdateDurabilityTick(defs, inv, 2)
	UpdateDurabilityTick(defs, eq, 2)

	if e, _ := inv.At(0); e.Durability != 10 {
		t.Fatalf("stowed tool wore down: %v", e.Durability)
	}
	if e, _ := eq.At(model.EquipMainHand); e.Durability != 8 {
		t.Fatalf("equipped tool durability=%v want 8", e.Durability)
	}
}

func TestDepletedUsesItemReplacedByResidual(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "WATER_JUG", 0, 1, 1, "")

	if !SpendUse(defs, c, 0) {
		t.Fatalf("SpendUse failed")
	}
	e, ok := c.At(0)
	if !ok || e.Item != "EMPTY_JUG" || e.Count != 1 {
		t.Fatalf("residual = %+v ok=%v want 1x EMPTY_JUG", e, ok)
	}
	if e.Provenance == "" {
		t.Fatalf("residual has no provenance")
	}
}

func TestSpendUseRefreshesNextUnit(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "WATER_JUG", 0, 2, 1, "")

	SpendUse(defs, c, 0)
	e, ok := c.At(0)
	if !ok || e.Item != "WATER_JUG" || e.Count != 1 {
		t.Fatalf("stack = %+v ok=%v want 1x WATER_JUG", e, ok)
	}
	if e.Durability != 4 {
		t.Fatalf("next unit durability=%v want refreshed 4", e.Durability)
	}
}

func TestGroupQueries(t *testing.T) {
	defs := testDefs()
	c := newInv(8)
	AddItemAt(defs, c, "STONE_AXE", 0, 1, 100, "")
	AddItemAt(defs, c, "WOOD", 1, 5, 0, "")

	if !HasItemInGroup(defs, c, "AXE", 1) {
		t.Fatalf("AXE group not found")
	}
	if got := CountItemInGroup(defs, c, "TOOL"); got != 1 {
		t.Fatalf("TOOL count=%d want 1", got)
	}
	if HasItemInGroup(defs, c, "FOOD", 1) {
		t.Fatalf("FOOD group should be empty")
	}
}
