package catalogs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigs(t *testing.T, items, crafts, groups string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"items.json":  items,
		"crafts.json": crafts,
		"groups.json": groups,
	} {
		if content == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const validItems = `[
  {"id": "WOOD", "category": "BASIC", "stack_max": 50, "groups": ["FUEL"]},
  {"id": "BERRIES", "category": "CONSUMABLE", "durability_kind": "SPOIL", "durability": 48,
   "actions": [{"kind": "AUTO", "name": "consume"}]}
]`

const validCrafts = `[
  {"id": "CRAFT_AXE", "kind": "ITEM", "result": "STONE_AXE", "duration_ticks": 10,
   "items": [{"item": "WOOD", "count": 3}]},
  {"id": "BUILD_CAMPFIRE", "kind": "CONSTRUCTION", "items": [{"item": "WOOD", "count": 2}],
   "groups": ["CRAFT_STATION"]}
]`

const validGroups = `[
  {"id": "FUEL", "name": "Burnable fuel"},
  {"id": "CRAFT_STATION"}
]`

func TestLoadBuildsRegistry(t *testing.T) {
	dir := writeConfigs(t, validItems, validCrafts, validGroups)
	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wood, ok := c.Items.Defs["WOOD"]
	if !ok || wood.StackMax != 50 || !wood.InGroup("FUEL") {
		t.Fatalf("WOOD = %+v ok=%v", wood, ok)
	}
	berries := c.Items.Defs["BERRIES"]
	if berries.DurabilityKind != DurabilitySpoil || len(berries.Actions) != 1 {
		t.Fatalf("BERRIES = %+v", berries)
	}
	if c.Items.Digest == "" || c.Crafts.Digest == "" || c.Groups.Digest == "" {
		t.Fatalf("missing digests")
	}

	axe := c.Crafts.ByID["CRAFT_AXE"]
	if axe.Quantity != 1 {
		t.Fatalf("quantity default not applied: %d", axe.Quantity)
	}
	if axe.Buildable() {
		t.Fatalf("ITEM craft reported buildable")
	}
	if !c.Crafts.ByID["BUILD_CAMPFIRE"].Buildable() {
		t.Fatalf("CONSTRUCTION craft not buildable")
	}
}

func TestLoadDefaultsStackMaxToOne(t *testing.T) {
	dir := writeConfigs(t, `[{"id": "GEM", "category": "BASIC"}]`, `[]`, `[]`)
	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Items.Defs["GEM"].StackMax != 1 {
		t.Fatalf("stack max default = %d", c.Items.Defs["GEM"].StackMax)
	}
	if c.Items.Defs["GEM"].DurabilityKind != DurabilityNone {
		t.Fatalf("durability kind default = %q", c.Items.Defs["GEM"].DurabilityKind)
	}
}

func TestLoadDuplicateIDFirstWins(t *testing.T) {
	items := `[
  {"id": "WOOD", "category": "BASIC", "stack_max": 50},
  {"id": "WOOD", "category": "BASIC", "stack_max": 10}
]`
	var buf strings.Builder
	dir := writeConfigs(t, items, `[]`, `[]`)
	c, err := Load(dir, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Items.Defs["WOOD"].StackMax != 50 {
		t.Fatalf("later duplicate overrode first: %d", c.Items.Defs["WOOD"].StackMax)
	}
	if !strings.Contains(buf.String(), "duplicate") {
		t.Fatalf("duplicate not logged: %q", buf.String())
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	dir := writeConfigs(t, `[{"id": "X", "category": "NOT_A_CATEGORY"}]`, `[]`, `[]`)
	if _, err := Load(dir, nil); err == nil {
		t.Fatalf("bad category accepted")
	}

	dir = writeConfigs(t, validItems, `[{"kind": "ITEM"}]`, `[]`)
	if _, err := Load(dir, nil); err == nil {
		t.Fatalf("craft without id accepted")
	}
}

func TestLoadMissingGroupsFileIsOptional(t *testing.T) {
	dir := writeConfigs(t, validItems, validCrafts, "")
	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load without groups.json: %v", err)
	}
	if c.Groups.ByID == nil || len(c.Groups.ByID) != 0 {
		t.Fatalf("groups = %+v", c.Groups.ByID)
	}
}

func TestPaletteIsSortedAndIndexed(t *testing.T) {
	dir := writeConfigs(t, `[
  {"id": "B_ITEM", "category": "BASIC"},
  {"id": "A_ITEM", "category": "BASIC"}
]`, `[]`, `[]`)
	c, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Items.Palette[0] != "A_ITEM" || c.Items.Palette[1] != "B_ITEM" {
		t.Fatalf("palette = %v", c.Items.Palette)
	}
	if c.Items.Index["B_ITEM"] != 1 {
		t.Fatalf("index = %v", c.Items.Index)
	}
}
