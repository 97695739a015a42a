package force

import (
	"math"

	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// CenterMass attracts every mass toward the centroid of all current
// masses with an inverse-power law: fieldMag / dist^fieldOrder.
type CenterMass struct {
	toggle
	FieldMagnitude float64
	FieldOrder     float64
}

func NewCenterMass(fieldMagnitude, fieldOrder float64, on bool) *CenterMass {
	return &CenterMass{
		toggle:         toggle{on: on},
		FieldMagnitude: fieldMagnitude,
		FieldOrder:     fieldOrder,
	}
}

func (c *CenterMass) Name() string { return "centerMass" }

func (c *CenterMass) Contribution(m *phys.Mass, ctx Context) vect.Vec {
	if !c.on || len(ctx.Masses) == 0 {
		return vect.Zero
	}

	centroid := Centroid(ctx.Masses)
	dist := vect.Dist(m.Pos, centroid)
	if dist < minFieldDistance {
		// A mass sitting on the centroid has no pull direction; anything
		// closer than the clamp distance is treated the same.
		if dist == 0 {
			return vect.Zero
		}
		dist = minFieldDistance
	}

	mag := c.FieldMagnitude / math.Pow(dist, c.FieldOrder)
	return vect.FromPolar(vect.AngleBetween(m.Pos, centroid), mag)
}

// Centroid returns the unweighted center of the given masses.
func Centroid(masses []*phys.Mass) vect.Vec {
	var sum vect.Vec
	for _, m := range masses {
		sum = sum.Add(m.Pos)
	}
	return sum.Scale(1 / float64(len(masses)))
}
