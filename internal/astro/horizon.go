package astro

import (
	"math"
	"time"
)

// Observer is a ground site. Longitude is east positive.
type Observer struct {
	Name   string
	LatDeg float64
	LonDeg float64
}

// Horizontal is a position on an observer's local sky.
// Azimuth runs from north through east: 0 = N, 90 = E, 180 = S, 270 = W.
type Horizontal struct {
	AzDeg  float64
	AltDeg float64
}

// AboveHorizon reports whether the position is above the geometric horizon.
func (h Horizontal) AboveHorizon() bool {
	return h.AltDeg > 0
}

// ToHorizontal converts an equatorial direction (radians) to the observer's
// local sky at t. Refraction is ignored.
func ToHorizontal(ra, dec float64, obs Observer, t time.Time) Horizontal {
	lat := DegToRad(obs.LatDeg)
	ha := DegToRad(LocalSiderealTime(t, obs.LonDeg)) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp(sinAlt, -1, 1))

	y := -math.Cos(dec) * math.Sin(ha)
	x := math.Sin(dec)*math.Cos(lat) - math.Cos(dec)*math.Sin(lat)*math.Cos(ha)
	az := math.Atan2(y, x)
	if az < 0 {
		az += 2 * math.Pi
	}

	return Horizontal{AzDeg: RadToDeg(az), AltDeg: RadToDeg(alt)}
}

// LocalSiderealTime returns the local sidereal time in degrees [0, 360)
// for a UTC instant and an east-positive longitude.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return wrap360(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime uses the IAU 1982 expression.
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	d := jd - 2451545.0
	c := d / 36525.0

	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*c*c - c*c*c/38710000.0
	return wrap360(gmst)
}

// julianDate returns the Julian Date of t on the Gregorian calendar.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	day := float64(t.Day())
	clock := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	day += clock.Hours() / 24

	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day + b - 1524.5
}

func wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
