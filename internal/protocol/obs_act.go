package protocol

type ObsMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	ActorID         string `json:"actor_id"`

	Self      SelfObs     `json:"self"`
	Inventory []SlotStack `json:"inventory"`
	Equipment []SlotStack `json:"equipment"`

	Craft  *CraftObs `json:"craft,omitempty"`
	Events []Event   `json:"events"`
}

type SelfObs struct {
	Pos        [3]int             `json:"pos"`
	Moving     bool               `json:"moving"`
	Busy       bool               `json:"busy"`
	Attributes map[string]float64 `json:"attributes"`
}

// SlotStack is the wire form of one occupied container slot. Absent slot
// indices are empty.
type SlotStack struct {
	Slot       int     `json:"slot"`
	Item       string  `json:"item"`
	Count      int     `json:"count"`
	Durability float64 `json:"durability,omitempty"`
	Provenance string  `json:"provenance,omitempty"`
}

type CraftObs struct {
	CraftID  string  `json:"craft_id"`
	State    string  `json:"state"` // "PLACING" or "CRAFTING"
	Progress float64 `json:"progress"`
	EtaTicks int     `json:"eta_ticks,omitempty"`
}

type Event map[string]interface{}

// ACT (client -> server)
type ActMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	ActID           string `json:"act_id,omitempty"`
	Verb            string `json:"verb"`

	// INTERACT / MERGE / slot ops.
	Slot      int    `json:"slot,omitempty"`
	OtherSlot int    `json:"other_slot,omitempty"`
	OtherKind string `json:"other_kind,omitempty"` // "SLOT", "OBJECT", or empty to resolve nearest
	Count     int    `json:"count,omitempty"`
	TargetID  string `json:"target_id,omitempty"` // world object id
	Action    string `json:"action,omitempty"`    // manual action name (empty = auto)

	// CRAFT / BUILD_START / BUILD_CONFIRM.
	CraftID string `json:"craft_id,omitempty"`
	Pos     [3]int `json:"pos,omitempty"`

	// MOVE (position only; movement cancels timed crafts).
	To [3]int `json:"to,omitempty"`
}

// Act verbs.
const (
	VerbInteract     = "INTERACT"
	VerbMerge        = "MERGE"
	VerbCraft        = "CRAFT"
	VerbBuildStart   = "BUILD_START"
	VerbBuildConfirm = "BUILD_CONFIRM"
	VerbCancel       = "CANCEL"
	VerbMoveSlot     = "MOVE_SLOT"
	VerbSwapSlots    = "SWAP_SLOTS"
	VerbEquip        = "EQUIP"
	VerbUnequip      = "UNEQUIP"
	VerbMove         = "MOVE"
)
