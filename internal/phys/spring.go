package phys

import "github.com/san-kum/springies/internal/vect"

// Linker is a connection between two masses that contributes force
// every tick. Spring and DragSpring implement it.
type Linker interface {
	Exert()
	Ends() (*Mass, *Mass)
}

// Spring connects two masses with a Hooke's-law restoring force:
// stretched past the rest length it pulls the ends together, compressed
// below it it pushes them apart.
type Spring struct {
	Start, End *Mass
	RestLength float64
	K          float64
}

func NewSpring(start, end *Mass, restLength, k float64) *Spring {
	return &Spring{Start: start, End: end, RestLength: restLength, K: k}
}

func (s *Spring) Ends() (*Mass, *Mass) { return s.Start, s.End }

// Exert applies the spring force to both endpoints, equal and opposite,
// directed along the line between them. Coincident endpoints have no
// defined axis and exert nothing.
func (s *Spring) Exert() {
	delta := s.End.Pos.Sub(s.Start.Pos)
	length := delta.Norm()
	if length == 0 {
		return
	}
	mag := s.K * (length - s.RestLength)
	f := delta.Scale(mag / length)
	s.Start.ApplyForce(f)
	s.End.ApplyForce(f.Neg())
}

// DefaultPullMagnitude is the constant pull of a drag spring.
const DefaultPullMagnitude = 20.0

// DragSpring models an operator dragging one mass toward another. It
// ignores stretch entirely: every tick the same constant-magnitude
// vector, pointing from the anchor toward the target, is applied to
// BOTH endpoints. The shared (not opposite) direction is deliberate;
// it reproduces the tug behavior the simulator always had.
type DragSpring struct {
	Anchor, Target *Mass
	PullMagnitude  float64
}

func NewDragSpring(anchor, target *Mass, pullMagnitude float64) *DragSpring {
	if pullMagnitude <= 0 {
		pullMagnitude = DefaultPullMagnitude
	}
	return &DragSpring{Anchor: anchor, Target: target, PullMagnitude: pullMagnitude}
}

func (d *DragSpring) Ends() (*Mass, *Mass) { return d.Anchor, d.Target }

func (d *DragSpring) Exert() {
	if d.Anchor.Pos == d.Target.Pos {
		return
	}
	angle := vect.AngleBetween(d.Anchor.Pos, d.Target.Pos)
	pull := vect.FromPolar(angle, d.PullMagnitude)
	d.Anchor.ApplyForce(pull)
	d.Target.ApplyForce(pull)
}
