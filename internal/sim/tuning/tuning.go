package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz   int     `yaml:"tick_rate_hz"`
	HoursPerTick float64 `yaml:"hours_per_tick"`
	UseRange     int     `yaml:"use_range"`

	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`

	Actor      ActorTuning     `yaml:"actor"`
	Containers ContainerTuning `yaml:"containers"`
}

type ActorTuning struct {
	StartEnergy float64 `yaml:"start_energy"`
	EnergyAttr  string  `yaml:"energy_attr"`
	BusyTicks   int     `yaml:"busy_ticks"`
}

type ContainerTuning struct {
	InventoryCapacity int `yaml:"inventory_capacity"`
	StorageCapacity   int `yaml:"storage_capacity"`
	BagCapacity       int `yaml:"bag_capacity"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t.withDefaults(), nil
}

func (t Tuning) withDefaults() Tuning {
	if t.TickRateHz <= 0 {
		t.TickRateHz = 5
	}
	if t.HoursPerTick <= 0 {
		t.HoursPerTick = 0.01
	}
	if t.UseRange <= 0 {
		t.UseRange = 2
	}
	if t.SnapshotEveryTicks <= 0 {
		t.SnapshotEveryTicks = 3000
	}
	if t.Actor.StartEnergy <= 0 {
		t.Actor.StartEnergy = 100
	}
	if t.Actor.EnergyAttr == "" {
		t.Actor.EnergyAttr = "energy"
	}
	if t.Actor.BusyTicks <= 0 {
		t.Actor.BusyTicks = 5
	}
	if t.Containers.InventoryCapacity <= 0 {
		t.Containers.InventoryCapacity = 24
	}
	if t.Containers.StorageCapacity <= 0 {
		t.Containers.StorageCapacity = 48
	}
	if t.Containers.BagCapacity <= 0 {
		t.Containers.BagCapacity = 8
	}
	return t
}

// Default returns the tuning used when no tuning.yaml is present.
func Default() Tuning {
	return Tuning{}.withDefaults()
}
