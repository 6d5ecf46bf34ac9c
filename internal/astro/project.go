// Package astro provides celestial coordinate conversions and sphere projection.
package astro

import (
	"fmt"
	"math"
)

// Project maps equatorial coordinates (radians) onto the unit sphere.
//
// Dec is the elevation above the X/Z plane and RA the azimuth around +Y:
//
//	x = cos(ra) * cos(dec)
//	y = sin(dec)
//	z = sin(ra) * cos(dec)
//
// Constellation line tables depend on this exact axis assignment.
func Project(ra, dec float64) Vec3 {
	cosDec := math.Cos(dec)
	return Vec3{
		X: math.Cos(ra) * cosDec,
		Y: math.Sin(dec),
		Z: math.Sin(ra) * cosDec,
	}
}

// Unproject recovers RA (0..2π) and Dec (radians) from a direction vector.
func Unproject(v Vec3) (ra, dec float64) {
	n := v.Normalized()
	if n == (Vec3{}) {
		return 0, 0
	}
	dec = math.Asin(clamp(n.Y, -1, 1))
	ra = math.Atan2(n.Z, n.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	return ra, dec
}

// HMSToRadians converts right ascension in hours/minutes/seconds to radians.
// One hour of RA is 15 degrees.
func HMSToRadians(h, m, s float64) float64 {
	hours := h + m/60 + s/3600
	return DegToRad(hours * 15)
}

// DMSToRadians converts a declination in degrees/minutes/seconds to radians.
// The sign applies to the whole angle; negative sets the southern hemisphere.
func DMSToRadians(negative bool, d, m, s float64) float64 {
	deg := math.Abs(d) + m/60 + s/3600
	if negative {
		deg = -deg
	}
	return DegToRad(deg)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// FormatRA formats a right ascension (radians) as "HHh MMm SS.Ss".
func FormatRA(ra float64) string {
	hours := math.Mod(RadToDeg(ra)/15, 24)
	if hours < 0 {
		hours += 24
	}
	h := int(hours)
	minutes := (hours - float64(h)) * 60
	m := int(minutes)
	s := (minutes - float64(m)) * 60
	return fmt.Sprintf("%02dh %02dm %04.1fs", h, m, s)
}

// FormatDec formats a declination (radians) as "±DD° MM′ SS″".
func FormatDec(dec float64) string {
	sign := '+'
	deg := RadToDeg(dec)
	if deg < 0 {
		sign = '-'
		deg = -deg
	}
	d := int(deg)
	minutes := (deg - float64(d)) * 60
	m := int(minutes)
	s := (minutes - float64(m)) * 60
	return fmt.Sprintf("%c%02d° %02d′ %02.0f″", sign, d, m, s)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
