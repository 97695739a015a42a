// Package force implements the global force fields: gravity, viscous
// drag, center-of-mass attraction, and wall repulsion. Each field is
// independently toggleable and is recomputed fresh from current mass
// state on every query; fields keep no kinematic history of their own.
package force

import (
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// Context carries the world state a field may need: the full mass list
// for centroid computation and the bounds for wall distances.
type Context struct {
	Masses []*phys.Mass
	Bounds vect.Rect
}

// Force is one toggleable field. A disabled force contributes the zero
// vector to every mass. Toggle and Enabled never fail.
type Force interface {
	Name() string
	Contribution(m *phys.Mass, ctx Context) vect.Vec
	Enabled() bool
	Toggle()
}

// toggle is the shared enabled-flag behavior of every field.
type toggle struct {
	on bool
}

func (t *toggle) Enabled() bool { return t.on }
func (t *toggle) Toggle()       { t.on = !t.on }

// minFieldDistance keeps inverse-power laws away from their
// singularity. Distances below it are clamped before exponentiation.
const minFieldDistance = 1.0
