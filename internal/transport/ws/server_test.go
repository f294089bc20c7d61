package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/tuning"
	"frontiercraft.ai/internal/sim/world"
)

func startTestServer(t *testing.T) (url string) {
	t.Helper()
	logger := log.New(os.Stdout, "[ws-test] ", 0)

	cats := &catalogs.Catalogs{
		Items: catalogs.ItemCatalog{
			Digest: "items-digest",
			Defs: map[string]catalogs.ItemDef{
				"WOOD": {ID: "WOOD", Category: catalogs.CategoryBasic, StackMax: 50},
			},
		},
		Crafts: catalogs.CraftCatalog{Digest: "crafts-digest", ByID: map[string]catalogs.CraftDef{}},
		Groups: catalogs.GroupCatalog{Digest: "groups-digest", ByID: map[string]catalogs.GroupDef{}},
	}
	tun := tuning.Default()
	tun.TickRateHz = 50 // fast ticks keep the test short

	w := world.New(world.Config{ID: "w_ws", Seed: 1}, tun, cats, logger)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	t.Cleanup(cancel)

	srv := httptest.NewServer(NewServer(w, logger).Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal %q: %v", b, err)
	}
	return m
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestHandshakeDeliversWelcomeAndCatalogs(t *testing.T) {
	url := startTestServer(t)
	conn := dial(t, url)

	sendJSON(t, conn, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ActorName:       "tester",
	})

	welcome := readMsg(t, conn)
	if welcome["type"] != protocol.TypeWelcome {
		t.Fatalf("first message = %v", welcome)
	}
	if welcome["actor_id"] != "A1" {
		t.Fatalf("actor_id = %v", welcome["actor_id"])
	}

	names := map[string]bool{}
	for i := 0; i < 3; i++ {
		m := readMsg(t, conn)
		if m["type"] != protocol.TypeCatalog {
			t.Fatalf("message %d = %v", i, m)
		}
		names[m["name"].(string)] = true
	}
	for _, n := range []string{"items", "crafts", "groups"} {
		if !names[n] {
			t.Fatalf("catalog %q missing (got %v)", n, names)
		}
	}
}

func TestObsStreamFlowsAfterHandshake(t *testing.T) {
	url := startTestServer(t)
	conn := dial(t, url)

	sendJSON(t, conn, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ActorName:       "tester",
	})
	for i := 0; i < 4; i++ {
		readMsg(t, conn) // welcome + catalogs
	}

	obs := readMsg(t, conn)
	if obs["type"] != protocol.TypeObs || obs["actor_id"] != "A1" {
		t.Fatalf("obs = %v", obs)
	}
}

func TestActReachesWorld(t *testing.T) {
	url := startTestServer(t)
	conn := dial(t, url)

	sendJSON(t, conn, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ActorName:       "tester",
	})
	for i := 0; i < 4; i++ {
		readMsg(t, conn)
	}

	sendJSON(t, conn, protocol.ActMsg{
		Type:            protocol.TypeAct,
		ProtocolVersion: protocol.Version,
		Verb:            protocol.VerbMove,
		To:              [3]int{7, 0, 7},
	})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		obs := readMsg(t, conn)
		self, _ := obs["self"].(map[string]any)
		if self == nil {
			continue
		}
		pos, _ := self["pos"].([]any)
		if len(pos) == 3 && pos[0].(float64) == 7 && pos[2].(float64) == 7 {
			return
		}
	}
	t.Fatalf("move never reflected in obs stream")
}

func TestHandshakeRejectsBadVersion(t *testing.T) {
	url := startTestServer(t)
	conn := dial(t, url)

	sendJSON(t, conn, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: "0.9",
		ActorName:       "tester",
	})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected close on version mismatch")
	}
}

func TestHandshakeRequiresHelloFirst(t *testing.T) {
	url := startTestServer(t)
	conn := dial(t, url)

	sendJSON(t, conn, protocol.ActMsg{
		Type:            protocol.TypeAct,
		ProtocolVersion: protocol.Version,
		Verb:            protocol.VerbMove,
	})

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected close when first message is not HELLO")
	}
}
