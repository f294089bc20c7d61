package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// Catalogs is the load-once definition registry. It is never mutated after
// Load returns; every component that needs lookups receives it by reference.
type Catalogs struct {
	Items  ItemCatalog
	Crafts CraftCatalog
	Groups GroupCatalog
}

type ItemCatalog struct {
	Palette []string
	Index   map[string]uint16
	Defs    map[string]ItemDef
	Digest  string
}

// Item categories.
const (
	CategoryBasic      = "BASIC"
	CategoryConsumable = "CONSUMABLE"
	CategoryEquipment  = "EQUIPMENT"
)

// Durability kinds.
const (
	DurabilityNone  = "NONE"
	DurabilityUses  = "USES"
	DurabilityTime  = "TIME"
	DurabilitySpoil = "SPOIL"
)

// Action binding kinds.
const (
	ActionManual = "MANUAL"
	ActionAuto   = "AUTO"
	ActionMerge  = "MERGE"
)

type ItemDef struct {
	ID             string             `json:"id"`
	Category       string             `json:"category"`
	DurabilityKind string             `json:"durability_kind,omitempty"`
	Durability     float64            `json:"durability,omitempty"`
	StackMax       int                `json:"stack_max,omitempty"`
	Groups         []string           `json:"groups,omitempty"`
	EquipSlot      string             `json:"equip_slot,omitempty"`
	EquipSide      string             `json:"equip_side,omitempty"`
	Damage         int                `json:"damage,omitempty"`
	Armor          int                `json:"armor,omitempty"`
	Effects        map[string]float64 `json:"effects,omitempty"`
	// ResidualItem is granted in place when a stack's durability depletes
	// (e.g. WATER_JUG -> EMPTY_JUG).
	ResidualItem string          `json:"residual_item,omitempty"`
	Actions      []ActionBinding `json:"actions,omitempty"`
}

// ActionBinding declares one action bound to an item or craft object. The
// binding order is load-bearing: auto dispatch executes the first binding
// whose predicate passes.
type ActionBinding struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	MergeGroup string `json:"merge_group,omitempty"`
}

func (d ItemDef) InGroup(group string) bool {
	for _, g := range d.Groups {
		if g == group {
			return true
		}
	}
	return false
}

type CraftCatalog struct {
	ByID   map[string]CraftDef
	Digest string
}

// Craft result kinds.
const (
	CraftItem         = "ITEM"
	CraftConstruction = "CONSTRUCTION"
	CraftPlant        = "PLANT"
	CraftCharacter    = "CHARACTER"
)

type CraftDef struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Result        string  `json:"result,omitempty"` // item id (ITEM kind only)
	DurationTicks int     `json:"duration_ticks,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
	EnergyCost    float64 `json:"energy_cost,omitempty"`
	Experience    float64 `json:"experience,omitempty"`

	ProximityGroup string        `json:"proximity_group,omitempty"`
	Items          []ItemCount   `json:"items,omitempty"`
	Fillers        []GroupCount  `json:"fillers,omitempty"`
	Prereqs        []PrereqCount `json:"prereqs,omitempty"`

	// Groups the built world object carries (buildable kinds only).
	Groups  []string        `json:"groups,omitempty"`
	Actions []ActionBinding `json:"actions,omitempty"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

type PrereqCount struct {
	Craft string `json:"craft"`
	Count int    `json:"count"`
	// CountWorld counts matching instantiated world objects instead of
	// owned inventory items.
	CountWorld bool `json:"count_world,omitempty"`
}

// Buildable reports whether the craft result requires world placement before
// being committed.
func (d CraftDef) Buildable() bool {
	switch d.Kind {
	case CraftConstruction, CraftPlant, CraftCharacter:
		return true
	}
	return false
}

type GroupCatalog struct {
	ByID   map[string]GroupDef
	Digest string
}

// GroupDef is an opaque capability tag; items and objects declare membership.
type GroupDef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Load reads items.json, crafts.json and groups.json from configDir,
// validates each against its embedded schema and builds the registry.
// Duplicate identifiers keep the first registration; later ones are rejected
// and logged.
func Load(configDir string, logger *log.Logger) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items, logger); err != nil {
		return nil, err
	}
	if err := loadCrafts(filepath.Join(configDir, "crafts.json"), &c.Crafts, logger); err != nil {
		return nil, err
	}
	if err := loadGroups(filepath.Join(configDir, "groups.json"), &c.Groups, logger); err != nil {
		return nil, err
	}

	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadItems(path string, out *ItemCatalog, logger *log.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateSchema("items.schema.json", raw); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Digest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			warnf(logger, "items.json: duplicate id %s rejected (first wins)", d.ID)
			continue
		}
		if d.StackMax <= 0 {
			d.StackMax = 1
		}
		if d.DurabilityKind == "" {
			d.DurabilityKind = DurabilityNone
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	return nil
}

func loadCrafts(path string, out *CraftCatalog, logger *log.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateSchema("crafts.schema.json", raw); err != nil {
		return fmt.Errorf("crafts.json: %w", err)
	}
	out.Digest = sha256Hex(raw)

	var defs []CraftDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("crafts.json: %w", err)
	}
	out.ByID = map[string]CraftDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("crafts.json: empty id")
		}
		if _, dup := out.ByID[d.ID]; dup {
			warnf(logger, "crafts.json: duplicate id %s rejected (first wins)", d.ID)
			continue
		}
		if d.Kind == "" {
			d.Kind = CraftItem
		}
		if d.Quantity <= 0 {
			d.Quantity = 1
		}
		out.ByID[d.ID] = d
	}
	return nil
}

func loadGroups(path string, out *GroupCatalog, logger *log.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		// Groups may be declared only on items/crafts.
		if os.IsNotExist(err) {
			out.Digest = sha256Hex(nil)
			out.ByID = map[string]GroupDef{}
			return nil
		}
		return err
	}
	if err := validateSchema("groups.schema.json", raw); err != nil {
		return fmt.Errorf("groups.json: %w", err)
	}
	out.Digest = sha256Hex(raw)

	var defs []GroupDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("groups.json: %w", err)
	}
	out.ByID = map[string]GroupDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("groups.json: empty id")
		}
		if _, dup := out.ByID[d.ID]; dup {
			warnf(logger, "groups.json: duplicate id %s rejected (first wins)", d.ID)
			continue
		}
		out.ByID[d.ID] = d
	}
	return nil
}

func warnf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
