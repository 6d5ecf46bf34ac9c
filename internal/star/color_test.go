package star

import (
	"math"
	"testing"
)

const tol = 1e-9

func rgbNear(a, b RGB) bool {
	return math.Abs(a.R-b.R) < tol && math.Abs(a.G-b.G) < tol && math.Abs(a.B-b.B) < tol
}

func TestSpectralColor_FractionZeroIsLowerBound(t *testing.T) {
	for i, class := range []byte("OBAFGKM") {
		got := SpectralColor(class, 0)
		if !rgbNear(got, spectralTable[i]) {
			t.Errorf("SpectralColor(%c, 0) = %+v, want %+v", class, got, spectralTable[i])
		}
	}
}

func TestSpectralColor_FractionOneIsUpperBound(t *testing.T) {
	for i, class := range []byte("OBAFGKM") {
		got := SpectralColor(class, 1)
		if !rgbNear(got, spectralTable[i+1]) {
			t.Errorf("SpectralColor(%c, 1) = %+v, want %+v", class, got, spectralTable[i+1])
		}
	}
}

func TestSpectralColor_OnSegment(t *testing.T) {
	for i, class := range []byte("OBAFGKM") {
		lo, hi := spectralTable[i], spectralTable[i+1]
		for f := 0.0; f <= 1.0; f += 0.1 {
			got := SpectralColor(class, f)
			for _, ch := range []struct{ got, lo, hi float64 }{
				{got.R, lo.R, hi.R},
				{got.G, lo.G, hi.G},
				{got.B, lo.B, hi.B},
			} {
				min, max := math.Min(ch.lo, ch.hi), math.Max(ch.lo, ch.hi)
				if ch.got < min-tol || ch.got > max+tol {
					t.Errorf("SpectralColor(%c, %v) channel %v outside [%v, %v]", class, f, ch.got, min, max)
				}
			}
			// Same parameter along every channel.
			want := lo.Lerp(hi, f)
			if !rgbNear(got, want) {
				t.Errorf("SpectralColor(%c, %v) = %+v, want %+v", class, f, got, want)
			}
		}
	}
}

func TestSpectralColor_UnknownClassIsWhite(t *testing.T) {
	for _, class := range []byte{0, 'X', 'W', 'C', 'S', 'a', ' '} {
		if got := SpectralColor(class, 0.5); got != White {
			t.Errorf("SpectralColor(%q, 0.5) = %+v, want white", class, got)
		}
	}
}

func TestSpectralColor_ClampsFraction(t *testing.T) {
	if got := SpectralColor('G', -3); !rgbNear(got, spectralTable[4]) {
		t.Errorf("negative fraction not clamped: %+v", got)
	}
	if got := SpectralColor('G', 7); !rgbNear(got, spectralTable[5]) {
		t.Errorf("large fraction not clamped: %+v", got)
	}
}

func TestSubclassFraction(t *testing.T) {
	tests := []struct {
		in   byte
		want float64
	}{
		{'0', 0},
		{'5', 0.5},
		{'9', 0.9},
		{'p', 0},
		{' ', 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := SubclassFraction(tt.in); math.Abs(got-tt.want) > tol {
			t.Errorf("SubclassFraction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSpectralType(t *testing.T) {
	tests := []struct {
		in        string
		wantClass byte
		wantFrac  float64
	}{
		{"A1Vn", 'A', 0.1},
		{"K0III", 'K', 0},
		{"M2Iab", 'M', 0.2},
		{" B8Ia", 'B', 0.8},
		{"gG9", 'g', 0},
		{"F", 'F', 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		class, frac := ParseSpectralType(tt.in)
		if class != tt.wantClass || math.Abs(frac-tt.wantFrac) > tol {
			t.Errorf("ParseSpectralType(%q) = (%q, %v), want (%q, %v)",
				tt.in, class, frac, tt.wantClass, tt.wantFrac)
		}
	}
}

func TestRGB_Hex(t *testing.T) {
	if got := White.Hex(); got != "#ffffff" {
		t.Errorf("White.Hex() = %q", got)
	}
	if got := rgb8(0xff, 0xa2, 0x5a).Hex(); got != "#ffa25a" {
		t.Errorf("Hex() = %q, want #ffa25a", got)
	}
}
