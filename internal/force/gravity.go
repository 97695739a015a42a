package force

import (
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// Gravity pulls every mass in a constant direction with a constant
// magnitude, independent of the mass's state.
type Gravity struct {
	toggle
	Angle     float64 // radians
	Magnitude float64
}

func NewGravity(angle, magnitude float64, on bool) *Gravity {
	return &Gravity{toggle: toggle{on: on}, Angle: angle, Magnitude: magnitude}
}

func (g *Gravity) Name() string { return "gravity" }

func (g *Gravity) Contribution(_ *phys.Mass, _ Context) vect.Vec {
	if !g.on {
		return vect.Zero
	}
	return vect.FromPolar(g.Angle, g.Magnitude)
}
