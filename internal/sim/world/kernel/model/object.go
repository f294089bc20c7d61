package model

// WorldObject is a placed craft result (construction/plant/character) or any
// other interactable the world registers. Provisional objects exist only as
// placement handles and are excluded from queries and snapshots until
// committed.
type WorldObject struct {
	ID     string
	Craft  string // craft definition id that produced it
	Groups []string
	Pos    Vec3i

	Provisional bool
}

func (o *WorldObject) InGroup(group string) bool {
	for _, g := range o.Groups {
		if g == group {
			return true
		}
	}
	return false
}
