package render

import (
	"errors"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Multi fans every instruction out to several renderers. All renderers
// see every call; their errors are joined.
type Multi []constellation.Renderer

func (m Multi) each(fn func(constellation.Renderer) error) error {
	var errs []error
	for _, r := range m {
		if err := fn(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PlaceStar implements constellation.Renderer.
func (m Multi) PlaceStar(v constellation.StarVisual) error {
	return m.each(func(r constellation.Renderer) error { return r.PlaceStar(v) })
}

// Recolor implements constellation.Renderer.
func (m Multi) Recolor(hr int, c star.RGB) error {
	return m.each(func(r constellation.Renderer) error { return r.Recolor(hr, c) })
}

// Resize implements constellation.Renderer.
func (m Multi) Resize(hr int, size float64) error {
	return m.each(func(r constellation.Renderer) error { return r.Resize(hr, size) })
}

// CreateGroup implements constellation.Renderer.
func (m Multi) CreateGroup(h constellation.Handle, label string) error {
	return m.each(func(r constellation.Renderer) error { return r.CreateGroup(h, label) })
}

// AddLine implements constellation.Renderer.
func (m Multi) AddLine(h constellation.Handle, seg astro.Segment) error {
	return m.each(func(r constellation.Renderer) error { return r.AddLine(h, seg) })
}

// DestroyGroup implements constellation.Renderer.
func (m Multi) DestroyGroup(h constellation.Handle) error {
	return m.each(func(r constellation.Renderer) error { return r.DestroyGroup(h) })
}

// Clear implements constellation.Renderer.
func (m Multi) Clear() error {
	return m.each(func(r constellation.Renderer) error { return r.Clear() })
}
