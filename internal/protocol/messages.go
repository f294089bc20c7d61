package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion string            `json:"protocol_version"`
	ActorName       string            `json:"actor_name"`
	Capabilities    HelloCapabilities `json:"capabilities"`
}

type HelloCapabilities struct {
	MaxQueue int `json:"max_queue,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	ActorID         string         `json:"actor_id"`
	WorldParams     WorldParams    `json:"world_params"`
	Catalogs        CatalogDigests `json:"catalogs"`
}

type WorldParams struct {
	TickRateHz   int     `json:"tick_rate_hz"`
	HoursPerTick float64 `json:"hours_per_tick"`
	UseRange     int     `json:"use_range"`
}

type CatalogDigests struct {
	ItemsDigest  string `json:"items_digest"`
	CraftsDigest string `json:"crafts_digest"`
	GroupsDigest string `json:"groups_digest"`
}

// CATALOG (server -> client): one catalog as a single part.
type CatalogMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Name            string      `json:"name"`   // "items", "crafts", "groups"
	Digest          string      `json:"digest"` // sha256 hex
	Data            interface{} `json:"data"`
}
