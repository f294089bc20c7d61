package world

import (
	"encoding/json"
	"sort"

	"frontiercraft.ai/internal/protocol"
	"frontiercraft.ai/internal/sim/world/feature/crafting"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// broadcastObs sends each connected client its post-step view. Send is
// non-blocking; a client that cannot keep up drops frames rather than
// stalling the loop.
func (w *World) broadcastObs(now uint64) {
	ids := make([]string, 0, len(w.clients))
	for id := range w.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		a, ok := w.actors[id]
		if !ok {
			continue
		}
		obs := w.buildObs(now, a)
		raw, err := json.Marshal(obs)
		if err != nil {
			w.log.Printf("obs marshal %s: %v", id, err)
			continue
		}
		select {
		case w.clients[id].Out <- raw:
		default:
			w.log.Printf("obs drop: %s slow consumer at tick %d", id, now)
		}
	}
}

func (w *World) buildObs(now uint64, a *model.Actor) protocol.ObsMsg {
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            now,
		ActorID:         a.ID,
		Self: protocol.SelfObs{
			Pos:        [3]int{a.Pos.X, a.Pos.Y, a.Pos.Z},
			Moving:     a.Moving,
			Busy:       w.IsBusy(a),
			Attributes: map[string]float64(a.Attributes),
		},
		Inventory: a.Inventory.SlotList(),
		Equipment: a.Equipment.SlotList(),
		Events:    a.TakeEvents(),
	}
	if obs.Events == nil {
		obs.Events = []protocol.Event{}
	}

	if orch, ok := w.orchestrators[a.ID]; ok {
		if def, active := orch.Active(); active {
			c := &protocol.CraftObs{CraftID: def.ID, State: string(orch.State())}
			if orch.State() == crafting.TimedCrafting {
				if p, ok := orch.Progress(w); ok {
					c.Progress = p
				}
				c.EtaTicks = orch.EtaTicks(w)
			}
			obs.Craft = c
		}
	}
	return obs
}
