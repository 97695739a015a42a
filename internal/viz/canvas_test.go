package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/springies/internal/vect"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	if got := c.String(); strings.ContainsRune(got, '⠁') {
		t.Fatal("fresh canvas should be blank")
	}

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected first cell to carry a lit pixel")
	}

	// Out-of-range sets must not panic or wrap around.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4*2, 0)
	c.Set(0, 2*4)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("clear should blank every cell")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	if c.Grid[0][0] == 0x2800 {
		t.Error("line start cell should be lit")
	}
	if c.Grid[9][9] == 0x2800 {
		t.Error("line end cell should be lit")
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	c := NewCanvas(80, 20)
	p := Projection{Bounds: vect.NewRect(0, 0, 800, 600), Canvas: c}

	x, y := p.Point(vect.New(0, 0))
	if x != 0 || y != 0 {
		t.Errorf("world origin should map to subpixel origin, got (%d,%d)", x, y)
	}

	x, y = p.Point(vect.New(800, 600))
	if x != c.Width*2-1 || y != c.Height*4-1 {
		t.Errorf("world max should map to the last subpixel, got (%d,%d)", x, y)
	}

	// Unprojecting a cell lands inside the world slice that cell covers.
	w := p.Unproject(40, 10)
	if w.X <= 0 || w.X >= 800 || w.Y <= 0 || w.Y >= 600 {
		t.Errorf("unprojected point out of bounds: %+v", w)
	}
}
