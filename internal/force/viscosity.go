package force

import (
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// Viscosity is linear drag: magnitude scale*|v|, direction opposite the
// mass's velocity. A mass at rest feels nothing.
type Viscosity struct {
	toggle
	Scale float64
}

func NewViscosity(scale float64, on bool) *Viscosity {
	return &Viscosity{toggle: toggle{on: on}, Scale: scale}
}

func (v *Viscosity) Name() string { return "viscosity" }

func (v *Viscosity) Contribution(m *phys.Mass, _ Context) vect.Vec {
	if !v.on {
		return vect.Zero
	}
	if m.Vel == vect.Zero {
		return vect.Zero
	}
	return m.Vel.Scale(-v.Scale)
}
