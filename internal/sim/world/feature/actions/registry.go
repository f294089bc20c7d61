package actions

import (
	"log"

	"frontiercraft.ai/internal/sim/catalogs"
)

// Registry maps action names to their descriptors. Catalog bindings refer to
// actions by name; the binding supplies kind and merge group, the registry
// supplies predicate and effect.
type Registry struct {
	byName map[string]Spec
	logger *log.Logger
}

func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{byName: map[string]Spec{}, logger: logger}
}

// Register adds a descriptor. A duplicate name keeps the first registration;
// the rejected one is logged.
func (r *Registry) Register(s Spec) bool {
	if s.Name == "" {
		return false
	}
	if _, dup := r.byName[s.Name]; dup {
		if r.logger != nil {
			r.logger.Printf("actions: duplicate registration %q rejected (first wins)", s.Name)
		}
		return false
	}
	r.byName[s.Name] = s
	return true
}

// Resolve combines a catalog binding with its registered descriptor. The
// binding's kind and merge group override the registered defaults.
func (r *Registry) Resolve(b catalogs.ActionBinding) (Spec, bool) {
	s, ok := r.byName[b.Name]
	if !ok {
		return Spec{}, false
	}
	if b.Kind != "" {
		s.Kind = Kind(b.Kind)
	}
	if b.MergeGroup != "" {
		s.MergeGroup = b.MergeGroup
	}
	return s, true
}

// Bound resolves a binding list in declaration order, dropping bindings with
// no registered descriptor.
func (r *Registry) Bound(bindings []catalogs.ActionBinding) []Spec {
	out := make([]Spec, 0, len(bindings))
	for _, b := range bindings {
		if s, ok := r.Resolve(b); ok {
			out = append(out, s)
		}
	}
	return out
}
