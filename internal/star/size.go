package star

import (
	"fmt"
	"strings"
)

// DefaultSize is the size used when a magnitude is missing or unparseable.
const DefaultSize = 0.1

// MagnitudeProfile declares the scale a catalog stores magnitudes in.
// Magnitudes at or below Min map to size 1, at or above Max to size 0.
type MagnitudeProfile struct {
	Name string
	Min  float64
	Max  float64
}

var (
	// Hundredths is the binary catalog scale (magnitude × 100).
	Hundredths = MagnitudeProfile{Name: "hundredths", Min: -146, Max: 796}

	// Decimal is the structured-text scale.
	Decimal = MagnitudeProfile{Name: "decimal", Min: -1.46, Max: 7.96}
)

// Size maps an apparent magnitude to a display size in [0,1].
// Brighter (lower) magnitudes give larger sizes.
func (p MagnitudeProfile) Size(mag float64) float64 {
	return 1 - InverseLerp(p.Min, p.Max, mag)
}

// Decimal converts a magnitude expressed in this profile to decimal magnitude.
func (p MagnitudeProfile) Decimal(mag float64) float64 {
	if p.Name == Hundredths.Name {
		return mag / 100
	}
	return mag
}

// ParseMagnitudeProfile resolves a profile name. The empty string returns
// ok=false so callers can fall back to a per-format default.
func ParseMagnitudeProfile(s string) (MagnitudeProfile, bool, error) {
	switch strings.ToLower(s) {
	case "":
		return MagnitudeProfile{}, false, nil
	case Hundredths.Name:
		return Hundredths, true, nil
	case Decimal.Name:
		return Decimal, true, nil
	default:
		return MagnitudeProfile{}, false, fmt.Errorf("unknown magnitude profile %q", s)
	}
}

// InverseLerp returns where v lies between a and b, clamped to [0,1].
// A degenerate range returns 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return clamp01((v - a) / (b - a))
}

// Lerp interpolates from a to b by t (unclamped).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
