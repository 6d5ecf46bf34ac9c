package astro

import (
	"math"
	"testing"
)

func TestProject_UnitNorm(t *testing.T) {
	for ra := -4 * math.Pi; ra <= 4*math.Pi; ra += 0.37 {
		for dec := -math.Pi; dec <= math.Pi; dec += 0.29 {
			v := Project(ra, dec)
			if math.Abs(v.Norm()-1) > 1e-12 {
				t.Errorf("Project(%v, %v) norm = %v, want 1", ra, dec, v.Norm())
			}
		}
	}
}

func TestProject_AxisAssignment(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
		want    Vec3
	}{
		{"origin", 0, 0, Vec3{1, 0, 0}},
		{"ra 90", math.Pi / 2, 0, Vec3{0, 0, 1}},
		{"ra 180", math.Pi, 0, Vec3{-1, 0, 0}},
		{"north pole", 1.234, math.Pi / 2, Vec3{0, 1, 0}},
		{"south pole", 0, -math.Pi / 2, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.ra, tt.dec)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("Project(%v, %v) = %+v, want %+v", tt.ra, tt.dec, got, tt.want)
			}
		})
	}
}

func TestProject_Deterministic(t *testing.T) {
	a := Project(1.1, -0.4)
	b := Project(1.1, -0.4)
	if a != b {
		t.Errorf("Project not deterministic: %+v vs %+v", a, b)
	}
}

func TestUnproject_RoundTrip(t *testing.T) {
	for ra := 0.05; ra < 2*math.Pi; ra += 0.5 {
		for dec := -1.5; dec <= 1.5; dec += 0.25 {
			gotRA, gotDec := Unproject(Project(ra, dec))
			if math.Abs(gotRA-ra) > 1e-9 || math.Abs(gotDec-dec) > 1e-9 {
				t.Errorf("Unproject(Project(%v, %v)) = (%v, %v)", ra, dec, gotRA, gotDec)
			}
		}
	}
}

func TestHMSToRadians(t *testing.T) {
	tests := []struct {
		h, m, s float64
		wantDeg float64
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 15},
		{6, 0, 0, 90},
		{12, 30, 0, 187.5},
		{6, 45, 8.9, 101.287083},
	}

	for _, tt := range tests {
		got := RadToDeg(HMSToRadians(tt.h, tt.m, tt.s))
		if math.Abs(got-tt.wantDeg) > 1e-5 {
			t.Errorf("HMSToRadians(%v, %v, %v) = %v°, want %v°", tt.h, tt.m, tt.s, got, tt.wantDeg)
		}
	}
}

func TestDMSToRadians(t *testing.T) {
	tests := []struct {
		negative bool
		d, m, s  float64
		wantDeg  float64
	}{
		{false, 0, 0, 0, 0},
		{false, 45, 30, 0, 45.5},
		{true, 16, 42, 58, -16.716111},
		{true, 0, 30, 0, -0.5},
		{false, 89, 15, 51, 89.264167},
	}

	for _, tt := range tests {
		got := RadToDeg(DMSToRadians(tt.negative, tt.d, tt.m, tt.s))
		if math.Abs(got-tt.wantDeg) > 1e-5 {
			t.Errorf("DMSToRadians(%v, %v, %v, %v) = %v°, want %v°",
				tt.negative, tt.d, tt.m, tt.s, got, tt.wantDeg)
		}
	}
}

func TestInset(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}

	seg := Inset(a, b, 3)
	if seg.From != (Vec3{3, 0, 0}) || seg.To != (Vec3{7, 0, 0}) {
		t.Errorf("Inset(a, b, 3) = %+v, want 3..7", seg)
	}

	// Margin larger than half the length collapses to the midpoint.
	seg = Inset(a, b, 8)
	if seg.From.Distance(Vec3{5, 0, 0}) > 1e-12 || seg.To.Distance(Vec3{5, 0, 0}) > 1e-12 {
		t.Errorf("Inset(a, b, 8) = %+v, want midpoint", seg)
	}

	// Coincident points stay put.
	p := Vec3{400, 0, 0}
	seg = Inset(p, p, 3)
	if seg.From != p || seg.To != p {
		t.Errorf("Inset(p, p, 3) = %+v, want both at %+v", seg, p)
	}
}

func TestFormatRA(t *testing.T) {
	got := FormatRA(HMSToRadians(5, 55, 10.3))
	if got != "05h 55m 10.3s" {
		t.Errorf("FormatRA = %q, want %q", got, "05h 55m 10.3s")
	}
}

func TestFormatDec(t *testing.T) {
	got := FormatDec(DMSToRadians(true, 8, 12, 5))
	if got != "-08° 12′ 05″" {
		t.Errorf("FormatDec = %q, want %q", got, "-08° 12′ 05″")
	}
}
