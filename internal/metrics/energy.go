// Package metrics aggregates scalar diagnostics over a run: total
// mechanical energy and how well the walls keep the structure inside
// the world.
package metrics

import (
	"github.com/san-kum/springies/internal/model"
	"github.com/san-kum/springies/internal/phys"
)

// Energy averages the total mechanical energy of the model: kinetic
// energy of every free mass plus elastic energy of every spring.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(md *model.Model, t float64) {
	e.total += Total(md)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// Total computes the instantaneous mechanical energy of the model.
func Total(md *model.Model) float64 {
	energy := 0.0
	for _, m := range md.Masses() {
		v := m.Vel.Norm()
		energy += 0.5 * m.M * v * v
	}
	for _, link := range md.Links() {
		s, ok := link.(*phys.Spring)
		if !ok {
			continue
		}
		stretch := s.End.Pos.Sub(s.Start.Pos).Norm() - s.RestLength
		energy += 0.5 * s.K * stretch * stretch
	}
	return energy
}
