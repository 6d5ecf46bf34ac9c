package constellation

import (
	"fmt"
	"sort"
)

// Registry owns the constellation table and which entries are visible.
// It is not safe for concurrent use; callers serialize access.
type Registry struct {
	constellations []Constellation
	visible        map[int]Handle
}

// NewRegistry builds a registry over a fixed table. Every constellation
// starts hidden.
func NewRegistry(cs []Constellation) (*Registry, error) {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("constellation %d: %w", i, err)
		}
	}
	out := make([]Constellation, len(cs))
	copy(out, cs)
	return &Registry{
		constellations: out,
		visible:        make(map[int]Handle),
	}, nil
}

// Len returns the number of constellations.
func (r *Registry) Len() int {
	return len(r.constellations)
}

// At returns the constellation at index i.
func (r *Registry) At(i int) (Constellation, error) {
	if i < 0 || i >= len(r.constellations) {
		return Constellation{}, fmt.Errorf("%w: %d (have %d)", ErrInvalidConstellationIndex, i, len(r.constellations))
	}
	return r.constellations[i], nil
}

// All returns the constellation table in index order.
func (r *Registry) All() []Constellation {
	out := make([]Constellation, len(r.constellations))
	copy(out, r.constellations)
	return out
}

// IsVisible reports whether constellation i is currently drawn.
func (r *Registry) IsVisible(i int) bool {
	_, ok := r.visible[i]
	return ok
}

// Handle returns the overlay group of a visible constellation.
func (r *Registry) Handle(i int) (Handle, bool) {
	h, ok := r.visible[i]
	return h, ok
}

// Visible returns the indices of visible constellations, ascending.
func (r *Registry) Visible() []int {
	out := make([]int, 0, len(r.visible))
	for i := range r.visible {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (r *Registry) markVisible(i int, h Handle) {
	r.visible[i] = h
}

func (r *Registry) markHidden(i int) {
	delete(r.visible, i)
}
