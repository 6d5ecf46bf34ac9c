// Package render provides in-process Renderer implementations.
package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

var (
	// ErrUnknownStar means an instruction addressed a star that was never placed.
	ErrUnknownStar = errors.New("unknown star")

	// ErrUnknownGroup means an instruction addressed a missing group.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrDuplicateGroup means CreateGroup reused a live handle.
	ErrDuplicateGroup = errors.New("duplicate group")
)

// Group is a set of overlay lines.
type Group struct {
	Handle constellation.Handle `json:"handle"`
	Label  string               `json:"label"`
	Lines  []astro.Segment      `json:"lines"`
}

// Snapshot is a point-in-time copy of a Scene.
type Snapshot struct {
	Version uint64                     `json:"version"`
	Stars   []constellation.StarVisual `json:"stars"`
	Groups  []Group                    `json:"groups"`
}

// Star returns the visual for a catalog number.
func (s Snapshot) Star(hr int) (constellation.StarVisual, bool) {
	for i := len(s.Stars) - 1; i >= 0; i-- {
		if s.Stars[i].CatalogNumber == hr {
			return s.Stars[i], true
		}
	}
	return constellation.StarVisual{}, false
}

// Scene is a thread-safe scene graph. Stars are keyed by catalog number;
// placing a number again replaces the earlier visual in place.
type Scene struct {
	mu sync.RWMutex

	stars     []constellation.StarVisual
	starIndex map[int]int

	groups     map[constellation.Handle]*Group
	groupOrder []constellation.Handle

	version uint64
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		starIndex: make(map[int]int),
		groups:    make(map[constellation.Handle]*Group),
	}
}

// PlaceStar implements constellation.Renderer.
func (s *Scene) PlaceStar(v constellation.StarVisual) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.starIndex[v.CatalogNumber]; ok {
		s.stars[i] = v
	} else {
		s.starIndex[v.CatalogNumber] = len(s.stars)
		s.stars = append(s.stars, v)
	}
	s.version++
	return nil
}

// Recolor implements constellation.Renderer.
func (s *Scene) Recolor(hr int, c star.RGB) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.starIndex[hr]
	if !ok {
		return fmt.Errorf("%w: HR %d", ErrUnknownStar, hr)
	}
	s.stars[i].Color = c
	s.version++
	return nil
}

// Resize implements constellation.Renderer.
func (s *Scene) Resize(hr int, size float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.starIndex[hr]
	if !ok {
		return fmt.Errorf("%w: HR %d", ErrUnknownStar, hr)
	}
	s.stars[i].Size = size
	s.version++
	return nil
}

// CreateGroup implements constellation.Renderer.
func (s *Scene) CreateGroup(h constellation.Handle, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[h]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateGroup, h)
	}
	s.groups[h] = &Group{Handle: h, Label: label}
	s.groupOrder = append(s.groupOrder, h)
	s.version++
	return nil
}

// AddLine implements constellation.Renderer.
func (s *Scene) AddLine(h constellation.Handle, seg astro.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[h]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, h)
	}
	g.Lines = append(g.Lines, seg)
	s.version++
	return nil
}

// DestroyGroup implements constellation.Renderer.
func (s *Scene) DestroyGroup(h constellation.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[h]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, h)
	}
	delete(s.groups, h)
	for i, gh := range s.groupOrder {
		if gh == h {
			s.groupOrder = append(s.groupOrder[:i], s.groupOrder[i+1:]...)
			break
		}
	}
	s.version++
	return nil
}

// Clear implements constellation.Renderer.
func (s *Scene) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stars = nil
	s.starIndex = make(map[int]int)
	s.groups = make(map[constellation.Handle]*Group)
	s.groupOrder = nil
	s.version++
	return nil
}

// Version increases on every change.
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a deep copy of the scene.
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Version: s.version,
		Stars:   make([]constellation.StarVisual, len(s.stars)),
		Groups:  make([]Group, 0, len(s.groupOrder)),
	}
	copy(snap.Stars, s.stars)
	for _, h := range s.groupOrder {
		g := s.groups[h]
		lines := make([]astro.Segment, len(g.Lines))
		copy(lines, g.Lines)
		snap.Groups = append(snap.Groups, Group{Handle: g.Handle, Label: g.Label, Lines: lines})
	}
	return snap
}
