package constellation

import (
	"fmt"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Field places stars in world space: unit-sphere positions scaled out to
// Scale, with normalized sizes stretched over [SizeMin, SizeMax].
type Field struct {
	Scale   float64 `json:"scale"`
	SizeMin float64 `json:"size_min"`
	SizeMax float64 `json:"size_max"`
}

// DefaultField matches the stock scene dimensions.
func DefaultField() Field {
	return Field{Scale: 400, SizeMin: 0, SizeMax: 5}
}

// WorldPosition returns the star's position on the field sphere.
func (f Field) WorldPosition(s star.Star) astro.Vec3 {
	return s.Position.Scale(f.Scale)
}

// DisplaySize maps the star's normalized size into the field's bounds.
func (f Field) DisplaySize(s star.Star) float64 {
	return star.Lerp(f.SizeMin, f.SizeMax, s.Size)
}

// Visual builds the render description of a star.
func (f Field) Visual(s star.Star) StarVisual {
	return StarVisual{
		CatalogNumber: s.CatalogNumber,
		Name:          s.DisplayName(),
		Position:      f.WorldPosition(s),
		Color:         s.Color,
		Size:          f.DisplaySize(s),
	}
}

// Place sends every star to the renderer in order. Failures are
// collected and placement continues.
func (f Field) Place(r Renderer, stars []star.Star) []error {
	var errs []error
	for _, s := range stars {
		if err := r.PlaceStar(f.Visual(s)); err != nil {
			errs = append(errs, fmt.Errorf("place HR %d: %w", s.CatalogNumber, err))
		}
	}
	return errs
}

// RebuildVisualSizes changes the size bounds and resizes every star.
// The bounds are rejected, and nothing changes, if min < 0 or max < min.
func (f *Field) RebuildVisualSizes(r Renderer, stars []star.Star, minSize, maxSize float64) ([]error, error) {
	if minSize < 0 || maxSize < minSize {
		return nil, fmt.Errorf("%w: min %v, max %v", ErrInvalidSizeBounds, minSize, maxSize)
	}
	f.SizeMin, f.SizeMax = minSize, maxSize

	var errs []error
	for _, s := range stars {
		if err := r.Resize(s.CatalogNumber, f.DisplaySize(s)); err != nil {
			errs = append(errs, fmt.Errorf("resize HR %d: %w", s.CatalogNumber, err))
		}
	}
	return errs, nil
}
