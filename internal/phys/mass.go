// Package phys holds the point-mass and spring primitives of the
// simulation. All mutation happens synchronously inside one tick:
// springs and the environment accumulate force on each mass, then the
// mass integrates its own motion and clears the accumulator.
package phys

import "github.com/san-kum/springies/internal/vect"

const DefaultMass = 1.0

// Mass is a point body. Pinned masses ignore applied force and never
// move, but still participate in spring and field geometry.
type Mass struct {
	ID     string
	Pos    vect.Vec
	Vel    vect.Vec
	M      float64
	Pinned bool

	force vect.Vec
}

func NewMass(id string, pos vect.Vec, m float64, pinned bool) *Mass {
	if m <= 0 {
		m = DefaultMass
	}
	return &Mass{ID: id, Pos: pos, M: m, Pinned: pinned}
}

// ApplyForce adds f to the force accumulator. Pinned masses drop it.
func (m *Mass) ApplyForce(f vect.Vec) {
	if m.Pinned {
		return
	}
	m.force = m.force.Add(f)
}

// Force returns the force accumulated so far this tick.
func (m *Mass) Force() vect.Vec { return m.force }

// Step advances the mass one tick of semi-implicit Euler: velocity is
// updated from the current accumulated force first, position from the
// new velocity second. The accumulator is cleared either way.
func (m *Mass) Step(dt float64) {
	if !m.Pinned {
		acc := m.force.Scale(1 / m.M)
		m.Vel = m.Vel.Add(acc.Scale(dt))
		m.Pos = m.Pos.Add(m.Vel.Scale(dt))
	}
	m.force = vect.Zero
}
