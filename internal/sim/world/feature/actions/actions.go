package actions

import (
	"frontiercraft.ai/internal/sim/catalogs"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// Kind selects the binding rules for an action. The three kinds share one
// descriptor shape; there is no class hierarchy, just the tag plus the
// closure pair below.
type Kind string

const (
	Manual Kind = "MANUAL"
	Auto   Kind = "AUTO"
	Merge  Kind = "MERGE"
)

// Env is the world surface action predicates and effects resolve against at
// call time. Actions themselves hold no state.
type Env interface {
	Item(id string) (catalogs.ItemDef, bool)
	NearestWithGroup(pos model.Vec3i, group string, dist int) *model.WorldObject
	UseRange() int
}

// Target carries the operands an action is applied to. Manual and auto
// actions use Object or Container+Slot; merge actions additionally bind the
// second operand (another slot, or a world object).
type Target struct {
	Object *model.WorldObject

	Container *model.Container
	Slot      int

	OtherContainer *model.Container
	OtherSlot      int
	OtherObject    *model.WorldObject
}

// Spec is one stateless action descriptor: a legality predicate and an
// effect. A nil CanApply means "always legal" (the merge kind still checks
// its target group first). Returning false from the predicate is the
// action's only error channel; Apply assumes the predicate held.
type Spec struct {
	Name       string
	Kind       Kind
	MergeGroup string
	// Cancelable busy windows can be stopped before the effect fires.
	Cancelable bool

	CanApply func(env Env, a *model.Actor, t Target) bool
	Apply    func(env Env, a *model.Actor, t Target)
}

// Applicable evaluates the legality predicate, including the merge kind's
// default operand check: the other operand must carry the merge-target group
// (any operand passes when no group is set).
func (s Spec) Applicable(env Env, a *model.Actor, t Target) bool {
	if s.Kind == Merge && !mergeOperandOK(env, s.MergeGroup, t) {
		return false
	}
	if s.CanApply == nil {
		return true
	}
	return s.CanApply(env, a, t)
}

func mergeOperandOK(env Env, group string, t Target) bool {
	if t.OtherObject != nil {
		return group == "" || t.OtherObject.InGroup(group)
	}
	if t.OtherContainer != nil {
		e, ok := t.OtherContainer.At(t.OtherSlot)
		if !ok {
			return false
		}
		if group == "" {
			return true
		}
		d, ok := env.Item(e.Item)
		return ok && d.InGroup(group)
	}
	return false
}

// Invoke runs the effect. Callers must have checked Applicable; effects
// assume their preconditions hold and can corrupt quantities otherwise.
func (s Spec) Invoke(env Env, a *model.Actor, t Target) {
	if s.Apply != nil {
		s.Apply(env, a, t)
	}
}

// ResolveMergeTarget completes the single-operand merge form: it binds the
// nearest world object carrying the merge-target group within use range as
// the second operand. Without a target group, or with none in range, the
// action is inapplicable.
func ResolveMergeTarget(env Env, s Spec, a *model.Actor, t Target) (Target, bool) {
	if s.Kind != Merge || s.MergeGroup == "" {
		return t, false
	}
	o := env.NearestWithGroup(a.Pos, s.MergeGroup, env.UseRange())
	if o == nil {
		return t, false
	}
	t.OtherObject = o
	return t, true
}

// FirstEligible scans bound specs in declaration order and returns the first
// whose predicate passes. Reordering the declared list changes observed
// behavior; consumers must not assume stability across data edits.
func FirstEligible(env Env, a *model.Actor, t Target, bound []Spec) (Spec, bool) {
	for _, s := range bound {
		if s.Applicable(env, a, t) {
			return s, true
		}
	}
	return Spec{}, false
}
