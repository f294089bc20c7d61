package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 is the logical persisted world state. Provisional placement
// handles and active craft timers are intentionally excluded: cost is paid
// only at commit, so a resumed world simply has no craft in flight.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed         int64   `json:"seed"`
	TickRateHz   int     `json:"tick_rate_hz"`
	HoursPerTick float64 `json:"hours_per_tick"`
	UseRange     int     `json:"use_range"`

	Actors     []ActorV1     `json:"actors"`
	Containers []ContainerV1 `json:"containers"`
	Objects    []ObjectV1    `json:"objects,omitempty"`

	Counters CountersV1 `json:"counters"`
}

type ActorV1 struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Pos        [3]int             `json:"pos"`
	Yaw        int                `json:"yaw"`
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// ContainerV1 persists only occupied slots; absence of a slot index means
// empty.
type ContainerV1 struct {
	Kind     string   `json:"kind"`
	Owner    string   `json:"owner"`
	Capacity int      `json:"capacity"`
	Slots    []SlotV1 `json:"slots"`
}

type SlotV1 struct {
	Slot       int     `json:"slot"`
	Item       string  `json:"item"`
	Count      int     `json:"count"`
	Durability float64 `json:"durability,omitempty"`
	Provenance string  `json:"provenance,omitempty"`
}

type ObjectV1 struct {
	ID     string   `json:"id"`
	Craft  string   `json:"craft,omitempty"`
	Groups []string `json:"groups,omitempty"`
	Pos    [3]int   `json:"pos"`
}

type CountersV1 struct {
	NextActor  uint64 `json:"next_actor"`
	NextObject uint64 `json:"next_object"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is informational; gob carries it too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// PathFor names a snapshot file inside dir.
func PathFor(dir string, tick uint64) string {
	return filepath.Join(dir, fmt.Sprintf("snap_%012d.bin.zst", tick))
}

// LatestPath returns the newest snapshot in dir, or "" when none exist.
func LatestPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "snap_") && strings.HasSuffix(e.Name(), ".bin.zst") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
