package world

import (
	"sort"

	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// CraftStationGroup tags objects usable as generic craft stations.
const CraftStationGroup = "CRAFT_STATION"

func (w *World) Object(id string) (*model.WorldObject, bool) {
	o, ok := w.objects[id]
	return o, ok
}

// SpawnObject registers a committed world object produced by a craft
// definition.
func (w *World) SpawnObject(def catalogs.CraftDef, pos model.Vec3i) *model.WorldObject {
	o := &model.WorldObject{
		ID:     w.newObjectID(),
		Craft:  def.ID,
		Groups: def.Groups,
		Pos:    pos,
	}
	w.objects[o.ID] = o
	return o
}

// FindNearestWithGroup returns the closest committed object carrying the
// group within dist, or nil. Equal distances break on object id so the
// result is stable.
func (w *World) FindNearestWithGroup(group string, pos model.Vec3i, dist int) *model.WorldObject {
	var best *model.WorldObject
	bestSq := 0
	for _, id := range w.sortedObjectIDs() {
		o := w.objects[id]
		if o.Provisional || !o.InGroup(group) || !pos.Within(o.Pos, dist) {
			continue
		}
		sq := pos.DistSq(o.Pos)
		if best == nil || sq < bestSq {
			best, bestSq = o, sq
		}
	}
	return best
}

func (w *World) FindNearestCraftStation(pos model.Vec3i) *model.WorldObject {
	return w.FindNearestWithGroup(CraftStationGroup, pos, w.tun.UseRange)
}

// CountMatchingWorldObjects counts committed objects instantiated from the
// craft definition.
func (w *World) CountMatchingWorldObjects(craftID string) int {
	n := 0
	for _, o := range w.objects {
		if !o.Provisional && o.Craft == craftID {
			n++
		}
	}
	return n
}

func (w *World) sortedObjectIDs() []string {
	out := make([]string, 0, len(w.objects))
	for id := range w.objects {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
