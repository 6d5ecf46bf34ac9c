package constellation

import (
	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Handle identifies a rendered overlay group.
type Handle string

// StarVisual is what a renderer needs to draw one star.
type StarVisual struct {
	CatalogNumber int        `json:"hr"`
	Name          string     `json:"name"`
	Position      astro.Vec3 `json:"position"`
	Color         star.RGB   `json:"color"`
	Size          float64    `json:"size"`
}

// Renderer receives draw instructions. Stars are addressed by catalog number.
type Renderer interface {
	PlaceStar(v StarVisual) error
	Recolor(catalogNumber int, c star.RGB) error
	Resize(catalogNumber int, size float64) error
	CreateGroup(h Handle, label string) error
	AddLine(h Handle, seg astro.Segment) error
	DestroyGroup(h Handle) error
	Clear() error
}

// StarLookup resolves catalog numbers. *catalog.Index satisfies it.
type StarLookup interface {
	ByCatalogNumber(n int) (star.Star, bool)
}
