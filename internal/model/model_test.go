package model

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/springies/internal/env"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// quietEnv returns an environment with every field switched off, so
// tests see spring forces in isolation.
func quietEnv() *env.Environment {
	e := env.New(env.DefaultParams())
	for _, f := range e.Forces() {
		f.Toggle()
	}
	return e
}

func newTestModel(e *env.Environment) (*Model, *input.Commands, *input.Pointer) {
	keys := &input.Commands{}
	pointer := &input.Pointer{}
	md := New(e, keys, pointer, vect.NewRect(0, 0, 100, 100), phys.DefaultPullMagnitude)
	return md, keys, pointer
}

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.xsp")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpdateSpringPullsEndsTogether(t *testing.T) {
	md, _, _ := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 0 0\nmass b 0 10\nspring a b 5 1\n")
	if err := md.Load(path); err != nil {
		t.Fatal(err)
	}

	dt := 0.01
	md.Update(dt)

	a := md.Mass("a")
	b := md.Mass("b")

	// Stretch 5 at k=1: force 5, split with opposite sign.
	if math.Abs(a.Vel.Y-5*dt) > 1e-12 {
		t.Errorf("expected a.vy %f, got %f", 5*dt, a.Vel.Y)
	}
	if math.Abs(b.Vel.Y+5*dt) > 1e-12 {
		t.Errorf("expected b.vy %f, got %f", -5*dt, b.Vel.Y)
	}
	if a.Vel.Y <= 0 || b.Vel.Y >= 0 {
		t.Error("masses should accelerate toward each other")
	}
}

func TestUpdateZeroNetForceLeavesMassAlone(t *testing.T) {
	md, _, _ := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 30 40\n")
	if err := md.Load(path); err != nil {
		t.Fatal(err)
	}

	md.Update(0.04)

	a := md.Mass("a")
	if a.Pos != vect.New(30, 40) || a.Vel != vect.Zero {
		t.Errorf("free mass with no forces moved: pos=%+v vel=%+v", a.Pos, a.Vel)
	}
}

func TestUpdatePinnedMassIgnoresForces(t *testing.T) {
	md, _, _ := newTestModel(env.New(env.DefaultParams()))
	path := writeModelFile(t, "mass a 20 20 -5\nmass b 20 80\nspring a b 10 2\n")
	if err := md.Load(path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		md.Update(0.04)
	}

	a := md.Mass("a")
	if !a.Pinned {
		t.Fatal("negative mass value should declare a pinned mass")
	}
	if a.M != 5 {
		t.Errorf("pinned mass magnitude should be 5, got %f", a.M)
	}
	if a.Pos != vect.New(20, 20) || a.Vel != vect.Zero {
		t.Errorf("pinned mass moved: pos=%+v vel=%+v", a.Pos, a.Vel)
	}
}

func TestUpdateConsumesToggleOncePerTick(t *testing.T) {
	md, keys, _ := newTestModel(env.New(env.DefaultParams()))
	path := writeModelFile(t, "mass a 10 10\nmass b 90 90\nmass c 50 20\n")
	if err := md.Load(path); err != nil {
		t.Fatal(err)
	}

	keys.Post(input.ToggleGravity)
	md.Update(0.04)

	// One tick over three masses: the toggle lands exactly once.
	if md.Env().Gravity().Enabled() {
		t.Fatal("gravity should be off after one toggle")
	}

	// The next tick must not replay the consumed command.
	md.Update(0.04)
	if md.Env().Gravity().Enabled() {
		t.Error("toggle was consumed twice across ticks")
	}
}

func TestLoadDanglingSpringReference(t *testing.T) {
	g := NewWithT(t)

	md, _, _ := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 0 0\nspring a ghost 5 1\n")

	err := md.Load(path)
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, ErrUnknownMass)).To(BeTrue())
	g.Expect(md.Masses()).To(BeEmpty())
}

func TestLoadMalformedLeavesOldModel(t *testing.T) {
	g := NewWithT(t)

	md, _, _ := newTestModel(quietEnv())
	good := writeModelFile(t, "mass a 1 2\nmass b 3 4\nspring a b 5 1\n")
	g.Expect(md.Load(good)).To(Succeed())

	bad := writeModelFile(t, "mass c 0 zero\n")
	err := md.Load(bad)
	g.Expect(errors.Is(err, ErrBadRecord)).To(BeTrue())

	// The previously loaded model keeps running untouched.
	g.Expect(md.Masses()).To(HaveLen(2))
	g.Expect(md.Mass("a")).NotTo(BeNil())
}

func TestLoadDuplicateMass(t *testing.T) {
	g := NewWithT(t)

	md, _, _ := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 0 0\nmass a 1 1\n")

	g.Expect(errors.Is(md.Load(path), ErrDuplicateMass)).To(BeTrue())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := NewWithT(t)

	md, _, _ := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 1.5 2.25 3\nmass b 10 20 -2\nspring a b 7.5 0.25\n")
	g.Expect(md.Load(path)).To(Succeed())

	out := filepath.Join(t.TempDir(), "saved.xsp")
	g.Expect(md.Save(out)).To(Succeed())

	md2, _, _ := newTestModel(quietEnv())
	g.Expect(md2.Load(out)).To(Succeed())

	g.Expect(md2.Masses()).To(HaveLen(2))
	a := md2.Mass("a")
	g.Expect(a.Pos).To(Equal(vect.New(1.5, 2.25)))
	g.Expect(a.M).To(Equal(3.0))
	g.Expect(a.Pinned).To(BeFalse())

	b := md2.Mass("b")
	g.Expect(b.Pinned).To(BeTrue())
	g.Expect(b.M).To(Equal(2.0))

	g.Expect(md2.Links()).To(HaveLen(1))
	s := md2.Links()[0].(*phys.Spring)
	g.Expect(s.RestLength).To(Equal(7.5))
	g.Expect(s.K).To(Equal(0.25))
	g.Expect(s.Start.ID).To(Equal("a"))
	g.Expect(s.End.ID).To(Equal("b"))
}

func TestDragSpringFollowsPointer(t *testing.T) {
	md, _, pointer := newTestModel(quietEnv())
	path := writeModelFile(t, "mass a 10 10\nmass b 90 90\n")
	if err := md.Load(path); err != nil {
		t.Fatal(err)
	}

	pointer.Set(vect.New(12, 10))
	md.StartDrag(vect.New(12, 10))

	drag := md.Drag()
	if drag == nil {
		t.Fatal("expected an active drag spring")
	}
	if drag.Target.ID != "a" {
		t.Errorf("drag should grab the nearest mass, got %q", drag.Target.ID)
	}

	pointer.Set(vect.New(50, 60))
	md.Update(0.04)
	if drag.Anchor.Pos != vect.New(50, 60) {
		t.Errorf("anchor should track the pointer, got %+v", drag.Anchor.Pos)
	}

	md.EndDrag()
	if md.Drag() != nil {
		t.Error("EndDrag should remove the drag spring")
	}
}
