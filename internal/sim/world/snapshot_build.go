package world

import (
	"sort"

	"frontiercraft.ai/internal/persistence/snapshot"
	"frontiercraft.ai/internal/sim/world/feature/crafting"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// BuildSnapshot captures the persisted world state at the current tick.
// Called from the loop goroutine only; the returned value shares nothing
// with live state, so the sink may encode it off-thread.
func (w *World) BuildSnapshot() snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: 1,
			WorldID: w.cfg.ID,
			Tick:    w.tick.Load(),
		},
		Seed:         w.cfg.Seed,
		TickRateHz:   w.tun.TickRateHz,
		HoursPerTick: w.tun.HoursPerTick,
		UseRange:     w.tun.UseRange,
		Counters: snapshot.CountersV1{
			NextActor:  w.nextActorNum.Load(),
			NextObject: w.nextObjectNum.Load(),
		},
	}

	actorIDs := make([]string, 0, len(w.actors))
	for id := range w.actors {
		actorIDs = append(actorIDs, id)
	}
	sort.Strings(actorIDs)
	for _, id := range actorIDs {
		a := w.actors[id]
		av := snapshot.ActorV1{
			ID:   a.ID,
			Name: a.Name,
			Pos:  [3]int{a.Pos.X, a.Pos.Y, a.Pos.Z},
			Yaw:  a.Yaw,
		}
		if len(a.Attributes) > 0 {
			av.Attributes = make(map[string]float64, len(a.Attributes))
			for k, v := range a.Attributes {
				av.Attributes[k] = v
			}
		}
		snap.Actors = append(snap.Actors, av)
	}

	for _, id := range sortedContainerIDs(w.containers) {
		c := w.containers[id]
		cv := snapshot.ContainerV1{
			Kind:     string(c.Kind),
			Owner:    c.Owner,
			Capacity: c.Capacity,
			Slots:    make([]snapshot.SlotV1, 0, len(c.Slots)),
		}
		for _, i := range c.OccupiedSlots() {
			e := c.Slots[i]
			cv.Slots = append(cv.Slots, snapshot.SlotV1{
				Slot:       i,
				Item:       e.Item,
				Count:      e.Count,
				Durability: e.Durability,
				Provenance: e.Provenance,
			})
		}
		snap.Containers = append(snap.Containers, cv)
	}

	for _, id := range w.sortedObjectIDs() {
		o := w.objects[id]
		if o.Provisional {
			continue
		}
		snap.Objects = append(snap.Objects, snapshot.ObjectV1{
			ID:     o.ID,
			Craft:  o.Craft,
			Groups: append([]string(nil), o.Groups...),
			Pos:    [3]int{o.Pos.X, o.Pos.Y, o.Pos.Z},
		})
	}

	return snap
}

// LoadSnapshot restores world state from a snapshot. Must run before the
// loop starts; live clients and in-flight crafts are not part of the
// persisted schema, so every actor resumes idle and disconnected.
func (w *World) LoadSnapshot(snap snapshot.SnapshotV1) {
	w.tick.Store(snap.Header.Tick)
	w.nextActorNum.Store(snap.Counters.NextActor)
	w.nextObjectNum.Store(snap.Counters.NextObject)

	for _, cv := range snap.Containers {
		c := model.NewContainer(model.ContainerKind(cv.Kind), cv.Owner, cv.Capacity)
		for _, s := range cv.Slots {
			c.Slots[s.Slot] = model.StackEntry{
				Item:       s.Item,
				Count:      s.Count,
				Durability: s.Durability,
				Provenance: s.Provenance,
			}
		}
		w.containers[c.ID()] = c
	}

	for _, av := range snap.Actors {
		a := &model.Actor{
			ID:   av.ID,
			Name: av.Name,
			Pos:  model.Vec3i{X: av.Pos[0], Y: av.Pos[1], Z: av.Pos[2]},
			Yaw:  av.Yaw,
		}
		a.InitDefaults()
		for k, v := range av.Attributes {
			a.Attributes[k] = v
		}
		a.Inventory = w.GetContainer(model.ContainerGeneric, a.ID)
		a.Equipment = w.GetContainer(model.ContainerEquipment, a.ID)
		w.actors[a.ID] = a
		w.orchestrators[a.ID] = crafting.New(a)
	}

	for _, ov := range snap.Objects {
		w.objects[ov.ID] = &model.WorldObject{
			ID:     ov.ID,
			Craft:  ov.Craft,
			Groups: append([]string(nil), ov.Groups...),
			Pos:    model.Vec3i{X: ov.Pos[0], Y: ov.Pos[1], Z: ov.Pos[2]},
		}
	}
}
