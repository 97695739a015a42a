package metrics

import "github.com/san-kum/springies/internal/model"

// Containment reports the fraction of observed ticks in which every
// mass stayed inside the world bounds.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(md *model.Model, t float64) {
	c.samples++
	bounds := md.Bounds()
	for _, m := range md.Masses() {
		if !bounds.Contains(m.Pos) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
