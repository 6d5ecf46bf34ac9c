// Package star defines the immutable star record and the pure mappers that
// derive its renderable attributes: position, color and display size.
package star

import (
	"strconv"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
)

// Star is a cataloged star with its derived render attributes.
// Values are built once by New and never modified afterwards.
type Star struct {
	CatalogNumber int     `json:"hr"`
	RA            float64 `json:"ra"`  // radians
	Dec           float64 `json:"dec"` // radians

	// Proper motions are retained but not applied (fixed epoch).
	PMRA  float64 `json:"pm_ra"`
	PMDec float64 `json:"pm_dec"`

	SpectralClass    byte    `json:"-"`
	SpectralFraction float64 `json:"spectral_fraction"`

	Magnitude    float64 `json:"magnitude"`
	HasMagnitude bool    `json:"has_magnitude"`

	Position astro.Vec3 `json:"position"`
	Color    RGB        `json:"color"`
	Size     float64    `json:"size"`

	Meta Meta `json:"meta"`
}

// Meta holds descriptive pass-through fields with no computational role.
type Meta struct {
	Name          string  `json:"name,omitempty"`
	Common        string  `json:"common,omitempty"`
	Constellation string  `json:"constellation,omitempty"`
	Flamsteed     string  `json:"flamsteed,omitempty"`
	HD            int     `json:"hd,omitempty"`
	SpectralType  string  `json:"spectral_type,omitempty"`
	Temperature   float64 `json:"temperature_k,omitempty"`
}

// Params is the validated input to New. Optional inputs carry explicit
// presence flags instead of sentinel values.
type Params struct {
	CatalogNumber int
	RA, Dec       float64 // radians
	PMRA, PMDec   float64

	SpectralClass    byte    // 0 when unknown
	SpectralFraction float64 // 0 when no sub-class digit

	// Magnitude is in the units of Profile; Star.Magnitude is always decimal.
	Magnitude    float64
	HasMagnitude bool
	Profile      MagnitudeProfile

	Meta Meta
}

// New builds a Star, deriving position, color and size.
func New(p Params) Star {
	size := DefaultSize
	mag := 0.0
	if p.HasMagnitude {
		size = p.Profile.Size(p.Magnitude)
		mag = p.Profile.Decimal(p.Magnitude)
	}

	return Star{
		CatalogNumber:    p.CatalogNumber,
		RA:               p.RA,
		Dec:              p.Dec,
		PMRA:             p.PMRA,
		PMDec:            p.PMDec,
		SpectralClass:    p.SpectralClass,
		SpectralFraction: clamp01(p.SpectralFraction),
		Magnitude:        mag,
		HasMagnitude:     p.HasMagnitude,
		Position:         astro.Project(p.RA, p.Dec),
		Color:            SpectralColor(p.SpectralClass, p.SpectralFraction),
		Size:             size,
		Meta:             p.Meta,
	}
}

// SpectralLabel returns the class and sub-class as text, e.g. "A1" or "?".
func (s Star) SpectralLabel() string {
	if s.Meta.SpectralType != "" {
		return s.Meta.SpectralType
	}
	if s.SpectralClass == 0 {
		return "?"
	}
	digit := int(s.SpectralFraction*10 + 0.5)
	if digit > 9 {
		digit = 9
	}
	return string([]byte{s.SpectralClass, byte('0' + digit)})
}

// DisplayName returns the proper name when known, falling back to "HR n".
func (s Star) DisplayName() string {
	switch {
	case s.Meta.Common != "":
		return s.Meta.Common
	case s.Meta.Name != "":
		return s.Meta.Name
	default:
		return "HR " + strconv.Itoa(s.CatalogNumber)
	}
}
