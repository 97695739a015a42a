package force

import (
	"math"

	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// Side identifies one boundary of the world, matching the side codes of
// the environment file: 1=top, 2=right, 3=bottom, 4=left.
type Side int

const (
	Top Side = iota + 1
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// PushAngle is the fixed inward-normal direction of the side's
// repulsion: the top wall pushes down, the right wall pushes left, and
// so on. Only magnitude and exponent are data-driven.
func (s Side) PushAngle() float64 {
	switch s {
	case Top:
		return math.Pi / 2
	case Right:
		return math.Pi
	case Bottom:
		return -math.Pi / 2
	default:
		return 0
	}
}

// SingleWall repels masses from one boundary: magnitude/dist^exponent
// along the inward normal, with dist clamped away from zero so a mass
// hugging the wall cannot blow the force up.
type SingleWall struct {
	toggle
	Side      Side
	Magnitude float64
	Exponent  float64
}

func NewSingleWall(side Side, magnitude, exponent float64, on bool) *SingleWall {
	return &SingleWall{toggle: toggle{on: on}, Side: side, Magnitude: magnitude, Exponent: exponent}
}

func (w *SingleWall) Name() string { return "wall-" + w.Side.String() }

func (w *SingleWall) Contribution(m *phys.Mass, ctx Context) vect.Vec {
	if !w.on {
		return vect.Zero
	}

	var dist float64
	switch w.Side {
	case Top:
		dist = m.Pos.Y - ctx.Bounds.Min.Y
	case Right:
		dist = ctx.Bounds.Max.X - m.Pos.X
	case Bottom:
		dist = ctx.Bounds.Max.Y - m.Pos.Y
	case Left:
		dist = m.Pos.X - ctx.Bounds.Min.X
	}
	if dist < minFieldDistance {
		dist = minFieldDistance
	}

	mag := w.Magnitude / math.Pow(dist, w.Exponent)
	return vect.FromPolar(w.Side.PushAngle(), mag)
}

// WallField aggregates the four per-side walls. Its Contribution is the
// sum of the enabled sides; toggling the aggregate toggles every side.
type WallField struct {
	Walls [4]*SingleWall
}

func NewWallField(magnitude, exponent float64, on bool) *WallField {
	var f WallField
	for i, side := range []Side{Top, Right, Bottom, Left} {
		f.Walls[i] = NewSingleWall(side, magnitude, exponent, on)
	}
	return &f
}

func (f *WallField) Name() string { return "wall" }

// Wall returns the per-side instance, or nil for an unknown side.
func (f *WallField) Wall(s Side) *SingleWall {
	if s < Top || s > Left {
		return nil
	}
	return f.Walls[s-1]
}

func (f *WallField) Contribution(m *phys.Mass, ctx Context) vect.Vec {
	var sum vect.Vec
	for _, w := range f.Walls {
		sum = sum.Add(w.Contribution(m, ctx))
	}
	return sum
}

func (f *WallField) Enabled() bool {
	for _, w := range f.Walls {
		if w.Enabled() {
			return true
		}
	}
	return false
}

func (f *WallField) Toggle() {
	for _, w := range f.Walls {
		w.Toggle()
	}
}
