package viz

import (
	"strings"

	"github.com/san-kum/springies/internal/vect"
)

// Braille Patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDot draws a small filled blob, used for masses.
func (c *Canvas) DrawDot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Projection maps world coordinates onto canvas sub-pixels.
type Projection struct {
	Bounds vect.Rect
	Canvas *Canvas
}

func (p Projection) Point(w vect.Vec) (int, int) {
	x := (w.X - p.Bounds.Min.X) / p.Bounds.Width() * float64(p.Canvas.Width*2-1)
	y := (w.Y - p.Bounds.Min.Y) / p.Bounds.Height() * float64(p.Canvas.Height*4-1)
	return int(x), int(y)
}

// Unproject maps a terminal cell back into world coordinates, used for
// mouse-driven dragging.
func (p Projection) Unproject(col, row int) vect.Vec {
	x := p.Bounds.Min.X + (float64(col)+0.5)/float64(p.Canvas.Width)*p.Bounds.Width()
	y := p.Bounds.Min.Y + (float64(row)+0.5)/float64(p.Canvas.Height)*p.Bounds.Height()
	return vect.New(x, y)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
