package world

import (
	"sort"

	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// GetContainer returns the container registered for (kind, owner), creating
// and registering a new empty one on first reference. Containers persist for
// the life of the save.
func (w *World) GetContainer(kind model.ContainerKind, ownerID string) *model.Container {
	id := model.ContainerID(kind, ownerID)
	if c, ok := w.containers[id]; ok {
		return c
	}
	c := model.NewContainer(kind, ownerID, w.capacityFor(kind))
	w.containers[id] = c
	return c
}

func (w *World) IsContainerRegistered(ownerID string) bool {
	for _, c := range w.containers {
		if c.Owner == ownerID {
			return true
		}
	}
	return false
}

func (w *World) capacityFor(kind model.ContainerKind) int {
	switch kind {
	case model.ContainerStorage:
		return w.tun.Containers.StorageCapacity
	case model.ContainerBag:
		return w.tun.Containers.BagCapacity
	case model.ContainerEquipment:
		return model.EquipSlotCount
	default:
		return w.tun.Containers.InventoryCapacity
	}
}

func sortedContainerIDs(m map[string]*model.Container) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
