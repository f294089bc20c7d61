package cost

import (
	"sort"

	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/feature/economy/inventory"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// Cost is the normalized requirement multiset derived from a craft
// definition. It is computed per evaluation and never persisted.
type Cost struct {
	Items   map[string]int
	Fillers map[string]int
	Prereqs map[string]Need
	// Proximity names a group a nearby world object (or an equipped item)
	// must carry.
	Proximity string
}

type Need struct {
	Count int
	// CountWorld counts matching instantiated world objects instead of owned
	// items.
	CountWorld bool
}

// Env is the world surface affordability evaluation needs.
type Env interface {
	Item(id string) (catalogs.ItemDef, bool)
	CountWorldObjects(craftID string) int
	NearGroup(pos model.Vec3i, group string, dist int) bool
	UseRange() int
}

// Derive flattens a definition's requirement arrays into quantity multisets;
// duplicate entries increment counters instead of repeating.
func Derive(def catalogs.CraftDef) Cost {
	c := Cost{
		Items:     map[string]int{},
		Fillers:   map[string]int{},
		Prereqs:   map[string]Need{},
		Proximity: def.ProximityGroup,
	}
	for _, r := range def.Items {
		c.Items[r.Item] += r.Count
	}
	for _, r := range def.Fillers {
		c.Fillers[r.Group] += r.Count
	}
	for _, r := range def.Prereqs {
		n := c.Prereqs[r.Craft]
		n.Count += r.Count
		n.CountWorld = n.CountWorld || r.CountWorld
		c.Prereqs[r.Craft] = n
	}
	return c
}

// CanAfford evaluates every requirement against the given containers. A
// group filler is checked against its own quantity plus the quantity the
// explicit item requirements of that group already imply; this reduces, but
// does not eliminate, double counting of a single physical stack (see the
// overlap test for the pinned behavior).
func CanAfford(env Env, c Cost, actor *model.Actor, containers []*model.Container) bool {
	for item, qty := range c.Items {
		if countAll(containers, item) < qty {
			return false
		}
	}
	for group, qty := range c.Fillers {
		need := qty + overlapQty(env, c, group)
		if countAllInGroup(env, containers, group) < need {
			return false
		}
	}
	for craft, need := range c.Prereqs {
		have := 0
		if need.CountWorld {
			have = env.CountWorldObjects(craft)
		} else {
			have = countAll(containers, craft)
		}
		if have < need.Count {
			return false
		}
	}
	if c.Proximity != "" {
		near := env.NearGroup(actor.Pos, c.Proximity, env.UseRange())
		if !near && !inventory.EquippedInGroup(env, actor.Equipment, c.Proximity) {
			return false
		}
	}
	return true
}

// overlapQty sums the explicit item requirements whose item carries the
// filler group.
func overlapQty(env Env, c Cost, group string) int {
	n := 0
	for item, qty := range c.Items {
		if d, ok := env.Item(item); ok && d.InGroup(group) {
			n += qty
		}
	}
	return n
}

// Pay unconditionally removes the resolved items and fillers and decrements
// the actor energy attribute. It performs no affordability re-check and will
// under-remove silently if invoked before CanAfford held; the orchestrator
// only calls it at the commit transition.
func Pay(env Env, c Cost, actor *model.Actor, containers []*model.Container, energyAttr string, energyCost float64) {
	// Sorted key order: an item carrying two filler groups must be consumed
	// deterministically.
	for _, item := range sortedKeys(c.Items) {
		remaining := c.Items[item]
		for _, cont := range containers {
			if remaining <= 0 {
				break
			}
			remaining -= inventory.RemoveItem(cont, item, remaining)
		}
	}
	for _, group := range sortedKeys(c.Fillers) {
		remaining := c.Fillers[group]
		for _, cont := range containers {
			if remaining <= 0 {
				break
			}
			remaining -= inventory.RemoveItemInGroup(env, cont, group, remaining)
		}
	}
	if energyCost > 0 && actor != nil {
		actor.Attributes.Add(energyAttr, -energyCost)
	}
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func countAll(containers []*model.Container, item string) int {
	n := 0
	for _, c := range containers {
		n += inventory.CountItem(c, item)
	}
	return n
}

func countAllInGroup(defs inventory.Defs, containers []*model.Container, group string) int {
	n := 0
	for _, c := range containers {
		n += inventory.CountItemInGroup(defs, c, group)
	}
	return n
}
