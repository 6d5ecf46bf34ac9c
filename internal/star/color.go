package star

import (
	"fmt"
)

// RGB is a color with channels in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// White is the highlight color and the fallback for unknown classes.
var White = RGB{1, 1, 1}

// Lerp interpolates linearly from c toward d by t.
func (c RGB) Lerp(d RGB, t float64) RGB {
	return RGB{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
	}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(clamp01(v)*255 + 0.5)
}

func rgb8(r, g, b int) RGB {
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Reference colors for the class boundaries, from arXiv:2101.06254.
var spectralTable = [8]RGB{
	rgb8(0x5c, 0x7c, 0xff), // O1
	rgb8(0x5d, 0x7e, 0xff), // B0.5
	rgb8(0x79, 0x96, 0xff), // A0
	rgb8(0xb8, 0xc5, 0xff), // F0
	rgb8(0xff, 0xef, 0xed), // G1
	rgb8(0xff, 0xde, 0xc0), // K0
	rgb8(0xff, 0xa2, 0x5a), // M0
	rgb8(0xff, 0x7d, 0x24), // M9.5
}

// classIndex maps a spectral class letter to its table row, or -1.
func classIndex(class byte) int {
	switch class {
	case 'O':
		return 0
	case 'B':
		return 1
	case 'A':
		return 2
	case 'F':
		return 3
	case 'G':
		return 4
	case 'K':
		return 5
	case 'M':
		return 6
	default:
		return -1
	}
}

// SpectralColor interpolates between the reference color of class and the
// next class by fraction (clamped to [0,1]). Unknown classes are White.
func SpectralColor(class byte, fraction float64) RGB {
	idx := classIndex(class)
	if idx < 0 {
		return White
	}
	return spectralTable[idx].Lerp(spectralTable[idx+1], clamp01(fraction))
}

// SubclassFraction converts a sub-class digit character to a fraction.
// Anything other than '0'..'9' is 0.
func SubclassFraction(digit byte) float64 {
	if digit < '0' || digit > '9' {
		return 0
	}
	return float64(digit-'0') / 10
}

// ParseSpectralType extracts the class letter and sub-class fraction from
// a type string such as "B8Ia" or "K0III". Empty input gives class 0.
func ParseSpectralType(s string) (class byte, fraction float64) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			continue
		}
		class = c
		if i+1 < len(s) {
			fraction = SubclassFraction(s[i+1])
		}
		return class, fraction
	}
	return 0, 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
