package vect

// Rect is an axis-aligned bounding box. Min is the top-left corner in
// screen coordinates, Max the bottom-right.
type Rect struct {
	Min, Max Vec
}

func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Vec{X: x0, Y: y0}, Max: Vec{X: x1, Y: y1}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
