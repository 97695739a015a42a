// Package vect provides the 2-D vector primitive every kinematic
// quantity and force contribution is built from. Coordinates follow the
// screen convention: +x right, +y down, so angle 0 points right and
// pi/2 points down.
package vect

import "math"

type Vec struct {
	X, Y float64
}

var Zero = Vec{}

func New(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// FromPolar builds a vector from a heading in radians and a magnitude.
// A zero magnitude yields the zero vector regardless of angle.
func FromPolar(angle, mag float64) Vec {
	if mag == 0 {
		return Zero
	}
	return Vec{X: mag * math.Cos(angle), Y: mag * math.Sin(angle)}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

func (v Vec) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Heading returns the direction of v in radians in (-pi, pi]. The
// heading of the zero vector is not meaningful; callers must guard the
// zero-magnitude case themselves.
func (v Vec) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleBetween returns the heading of the line from p1 to p2.
func AngleBetween(p1, p2 Vec) float64 {
	return p2.Sub(p1).Heading()
}

// Dist returns the Euclidean distance between two points.
func Dist(p1, p2 Vec) float64 {
	return p2.Sub(p1).Norm()
}

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Radians converts an angle given in degrees, the unit used by the
// on-disk description files, to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts a radian heading back to degrees for serialization.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
