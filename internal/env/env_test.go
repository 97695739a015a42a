package env

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/springies/internal/force"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "environment.xsp")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCtx(masses ...*phys.Mass) force.Context {
	return force.Context{Masses: masses, Bounds: vect.NewRect(0, 0, 100, 100)}
}

func TestLoadGravity(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "gravity 0.0 9.8\n")

	g.Expect(e.Load(path)).To(Succeed())

	m := phys.NewMass("a", vect.New(50, 50), 3, false)
	m.Vel = vect.New(1, 2)

	// Gravity alone: switch the other fields off first.
	e.Viscosity().Toggle()
	e.CenterMass().Toggle()
	e.Walls().Toggle()

	f := e.NetForce(m, testCtx(m))
	g.Expect(f.Norm()).To(BeNumerically("~", 9.8, 1e-9))
	g.Expect(f.Heading()).To(BeNumerically("~", 0, 1e-9))
}

func TestLoadWallUpdatesOnlyThatSide(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "wall 1 77.0 3.0\n")
	g.Expect(e.Load(path)).To(Succeed())

	top := e.Walls().Wall(force.Top)
	g.Expect(top.Magnitude).To(Equal(77.0))
	g.Expect(top.Exponent).To(Equal(3.0))

	def := DefaultParams()
	for _, side := range []force.Side{force.Right, force.Bottom, force.Left} {
		w := e.Walls().Wall(side)
		g.Expect(w.Magnitude).To(Equal(def.WallMagnitude), "side %s", side)
		g.Expect(w.Exponent).To(Equal(def.WallExponent), "side %s", side)
	}
}

func TestLoadIgnoresUnknownKeywords(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "flubber 1 2 3\n\nviscosity 0.7\n")

	g.Expect(e.Load(path)).To(Succeed())
	g.Expect(e.Viscosity().Scale).To(Equal(0.7))
}

func TestLoadMalformedIsAtomic(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "gravity 45 25\nviscosity banana\n")

	err := e.Load(path)
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, ErrBadRecord)).To(BeTrue())

	// Nothing from the failed file stuck, including the earlier valid
	// gravity line.
	def := DefaultParams()
	g.Expect(e.Gravity().Magnitude).To(Equal(def.GravityMagnitude))
	g.Expect(e.Gravity().Angle).To(BeNumerically("~", vect.Radians(def.GravityAngle), 1e-12))
	g.Expect(e.Viscosity().Scale).To(Equal(def.ViscosityScale))
}

func TestLoadRejectsTrailingFields(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "gravity 45 25 999\n")

	err := e.Load(path)
	g.Expect(errors.Is(err, ErrBadRecord)).To(BeTrue())

	def := DefaultParams()
	g.Expect(e.Gravity().Magnitude).To(Equal(def.GravityMagnitude))
}

func TestLoadBadWallSide(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	path := writeEnvFile(t, "wall 9 10 2\n")

	g.Expect(errors.Is(e.Load(path), ErrBadRecord)).To(BeTrue())
}

func TestLoadMissingFile(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	err := e.Load(filepath.Join(t.TempDir(), "nope.xsp"))

	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestLoadKeepsToggleState(t *testing.T) {
	g := NewWithT(t)

	e := New(DefaultParams())
	e.Apply(input.ToggleGravity) // off

	path := writeEnvFile(t, "gravity 10 20\n")
	g.Expect(e.Load(path)).To(Succeed())

	g.Expect(e.Gravity().Enabled()).To(BeFalse())
	g.Expect(e.Gravity().Magnitude).To(Equal(20.0))
}

func TestApplyTogglesExactlyOneField(t *testing.T) {
	e := New(DefaultParams())

	before := make(map[string]bool)
	for _, f := range e.Forces() {
		before[f.Name()] = f.Enabled()
	}

	e.Apply(input.ToggleWallRight)

	for _, f := range e.Forces() {
		want := before[f.Name()]
		if f.Name() == "wall-right" {
			want = !want
		}
		if f.Enabled() != want {
			t.Errorf("%s: enabled=%v, want %v", f.Name(), f.Enabled(), want)
		}
	}
}

func TestNetForceSumsContributions(t *testing.T) {
	p := DefaultParams()
	p.GravityAngle = 90
	p.GravityMagnitude = 10
	e := New(p)

	// Only gravity and viscosity on.
	e.CenterMass().Toggle()
	e.Walls().Toggle()

	m := phys.NewMass("a", vect.New(50, 50), 1, false)
	m.Vel = vect.New(5, 0)

	f := e.NetForce(m, testCtx(m))

	wantX := -p.ViscosityScale * 5
	if math.Abs(f.X-wantX) > 1e-9 {
		t.Errorf("expected drag x %f, got %f", wantX, f.X)
	}
	if math.Abs(f.Y-10) > 1e-9 {
		t.Errorf("expected gravity y 10, got %f", f.Y)
	}
}
