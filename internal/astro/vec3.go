package astro

import (
	"math"
)

// Vec3 represents a 3D vector in the celestial frame (or world space once scaled).
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Distance returns the Euclidean distance between two points.
func (v Vec3) Distance(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// Segment is a straight line between two points in world space.
type Segment struct {
	From Vec3 `json:"from"`
	To   Vec3 `json:"to"`
}

// Inset pulls both endpoints of a→b toward each other by margin along the
// line direction. The margin is capped at half the segment length so the
// endpoints never cross; coincident points yield a zero-length segment.
func Inset(a, b Vec3, margin float64) Segment {
	length := a.Distance(b)
	if margin > length/2 {
		margin = length / 2
	}
	dir := b.Sub(a).Normalized().Scale(margin)
	return Segment{From: a.Add(dir), To: b.Sub(dir)}
}
