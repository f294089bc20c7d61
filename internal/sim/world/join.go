package world

import (
	"fmt"

	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/world/feature/crafting"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

func (w *World) joinActor(name string, out chan []byte) JoinResponse {
	if name == "" {
		name = "actor"
	}

	idNum := w.nextActorNum.Add(1)
	actorID := fmt.Sprintf("A%d", idNum)

	a := &model.Actor{
		ID:   actorID,
		Name: name,
		Pos:  model.Vec3i{X: int(idNum) * 2, Z: -int(idNum) * 2},
	}
	a.InitDefaults()
	a.Attributes.Add(w.tun.Actor.EnergyAttr, w.tun.Actor.StartEnergy)
	a.Inventory = w.GetContainer(model.ContainerGeneric, actorID)
	a.Equipment = w.GetContainer(model.ContainerEquipment, actorID)

	w.actors[actorID] = a
	w.orchestrators[actorID] = crafting.New(a)
	if out != nil {
		w.clients[actorID] = &clientState{Out: out}
	}

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ActorID:         actorID,
		WorldParams: protocol.WorldParams{
			TickRateHz:   w.tun.TickRateHz,
			HoursPerTick: w.tun.HoursPerTick,
			UseRange:     w.tun.UseRange,
		},
		Catalogs: protocol.CatalogDigests{
			ItemsDigest:  w.cats.Items.Digest,
			CraftsDigest: w.cats.Crafts.Digest,
			GroupsDigest: w.cats.Groups.Digest,
		},
	}

	catalogMsgs := []protocol.CatalogMsg{
		{
			Type:            protocol.TypeCatalog,
			ProtocolVersion: protocol.Version,
			Name:            "items",
			Digest:          w.cats.Items.Digest,
			Data:            w.cats.Items.Defs,
		},
		{
			Type:            protocol.TypeCatalog,
			ProtocolVersion: protocol.Version,
			Name:            "crafts",
			Digest:          w.cats.Crafts.Digest,
			Data:            w.cats.Crafts.ByID,
		},
		{
			Type:            protocol.TypeCatalog,
			ProtocolVersion: protocol.Version,
			Name:            "groups",
			Digest:          w.cats.Groups.Digest,
			Data:            w.cats.Groups.ByID,
		},
	}

	return JoinResponse{Welcome: welcome, Catalogs: catalogMsgs}
}

// Actor exposes sim state to the test harness and snapshot builder.
func (w *World) Actor(id string) (*model.Actor, bool) {
	a, ok := w.actors[id]
	return a, ok
}

func (w *World) Orchestrator(id string) (*crafting.Orchestrator, bool) {
	o, ok := w.orchestrators[id]
	return o, ok
}
