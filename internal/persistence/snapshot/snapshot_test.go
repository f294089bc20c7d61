package snapshot

import (
	"path/filepath"
	"testing"
)

func sampleSnapshot(tick uint64) SnapshotV1 {
	return SnapshotV1{
		Header:       Header{Version: 1, WorldID: "w_1", Tick: tick},
		Seed:         42,
		TickRateHz:   5,
		HoursPerTick: 0.01,
		UseRange:     2,
		Actors: []ActorV1{
			{ID: "A1", Name: "tester", Pos: [3]int{2, 0, -2}, Yaw: 90,
				Attributes: map[string]float64{"energy": 87.5}},
		},
		Containers: []ContainerV1{
			{Kind: "GENERIC", Owner: "A1", Capacity: 24, Slots: []SlotV1{
				{Slot: 0, Item: "WOOD", Count: 7},
				{Slot: 3, Item: "WATER_JUG", Count: 1, Durability: 2, Provenance: "w_1:10:A1"},
			}},
			{Kind: "STORAGE", Owner: "O5", Capacity: 48},
		},
		Objects: []ObjectV1{
			{ID: "O5", Craft: "BUILD_STORAGE_CHEST", Groups: []string{"STORAGE"}, Pos: [3]int{1, 0, 1}},
		},
		Counters: CountersV1{NextActor: 1, NextObject: 5},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := PathFor(dir, 1200)
	want := sampleSnapshot(1200)

	if err := WriteSnapshot(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Header != want.Header || got.Seed != want.Seed {
		t.Fatalf("header = %+v", got.Header)
	}
	if len(got.Containers) != 2 || len(got.Containers[0].Slots) != 2 {
		t.Fatalf("containers = %+v", got.Containers)
	}
	s := got.Containers[0].Slots[1]
	if s.Slot != 3 || s.Item != "WATER_JUG" || s.Durability != 2 || s.Provenance != "w_1:10:A1" {
		t.Fatalf("slot = %+v", s)
	}
	if got.Actors[0].Attributes["energy"] != 87.5 {
		t.Fatalf("attributes = %+v", got.Actors[0].Attributes)
	}
	if got.Objects[0].Groups[0] != "STORAGE" {
		t.Fatalf("objects = %+v", got.Objects)
	}
	if got.Counters != want.Counters {
		t.Fatalf("counters = %+v", got.Counters)
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.bin.zst")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLatestPathPicksHighestTick(t *testing.T) {
	dir := t.TempDir()
	for _, tick := range []uint64{300, 1200, 600} {
		if err := WriteSnapshot(PathFor(dir, tick), sampleSnapshot(tick)); err != nil {
			t.Fatalf("write %d: %v", tick, err)
		}
	}

	path, err := LatestPath(dir)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if path != PathFor(dir, 1200) {
		t.Fatalf("path = %q", path)
	}
}

func TestLatestPathEmpty(t *testing.T) {
	path, err := LatestPath(t.TempDir())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if path != "" {
		t.Fatalf("path = %q", path)
	}

	// A directory that does not exist is not an error either.
	path, err = LatestPath(filepath.Join(t.TempDir(), "missing"))
	if err != nil || path != "" {
		t.Fatalf("missing dir: %q, %v", path, err)
	}
}
