// Package model owns the collection of masses and springs and drives
// one integration step per tick: drain the pending toggle command,
// exert every spring, add the environment's net force to every mass,
// then advance kinematics.
package model

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/springies/internal/env"
	"github.com/san-kum/springies/internal/force"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

var (
	// ErrBadRecord indicates a malformed line in a model file.
	ErrBadRecord = errors.New("model: malformed record")
	// ErrUnknownMass indicates a spring referencing an undeclared mass.
	ErrUnknownMass = errors.New("model: spring references unknown mass")
	// ErrDuplicateMass indicates a mass id declared twice.
	ErrDuplicateMass = errors.New("model: duplicate mass id")
)

// Model file keywords.
const (
	massKeyword   = "mass"
	springKeyword = "spring"
)

const dragAnchorID = "drag-anchor"

// Model is the exclusive owner of all simulation state. Nothing outside
// Update mutates masses except through ApplyForce.
type Model struct {
	env     *env.Environment
	keys    *input.Commands
	pointer *input.Pointer
	bounds  vect.Rect
	pull    float64

	masses []*phys.Mass
	byID   map[string]*phys.Mass
	links  []phys.Linker

	dragAnchor *phys.Mass
	drag       *phys.DragSpring
}

func New(environment *env.Environment, keys *input.Commands, pointer *input.Pointer, bounds vect.Rect, pullMagnitude float64) *Model {
	return &Model{
		env:     environment,
		keys:    keys,
		pointer: pointer,
		bounds:  bounds,
		pull:    pullMagnitude,
		byID:    make(map[string]*phys.Mass),
	}
}

func (md *Model) Env() *env.Environment  { return md.env }
func (md *Model) Bounds() vect.Rect      { return md.bounds }
func (md *Model) Masses() []*phys.Mass   { return md.masses }
func (md *Model) Links() []phys.Linker   { return md.links }
func (md *Model) Drag() *phys.DragSpring { return md.drag }

func (md *Model) Mass(id string) *phys.Mass {
	return md.byID[id]
}

// AddMass creates a mass directly, as when the operator drops one into
// the world. The id must be unused.
func (md *Model) AddMass(id string, pos vect.Vec, m float64, pinned bool) (*phys.Mass, error) {
	if _, dup := md.byID[id]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMass, id)
	}
	mass := phys.NewMass(id, pos, m, pinned)
	md.masses = append(md.masses, mass)
	md.byID[id] = mass
	return mass, nil
}

// AddSpring connects two existing masses.
func (md *Model) AddSpring(id1, id2 string, restLength, k float64) (*phys.Spring, error) {
	start, ok := md.byID[id1]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMass, id1)
	}
	end, ok := md.byID[id2]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMass, id2)
	}
	s := phys.NewSpring(start, end, restLength, k)
	md.links = append(md.links, s)
	return s, nil
}

// Update advances the simulation one tick. The command mailbox is
// drained exactly once here, before any mass is processed, so a toggle
// is applied once per tick regardless of how many masses follow.
func (md *Model) Update(dt float64) {
	if cmd, ok := md.keys.Take(); ok {
		md.env.Apply(cmd)
	}

	if md.dragAnchor != nil {
		if pos, ok := md.pointer.Get(); ok {
			md.dragAnchor.Pos = pos
		}
	}

	for _, link := range md.links {
		link.Exert()
	}
	if md.drag != nil {
		md.drag.Exert()
	}

	ctx := force.Context{Masses: md.masses, Bounds: md.bounds}
	for _, m := range md.masses {
		m.ApplyForce(md.env.NetForce(m, ctx))
	}

	for _, m := range md.masses {
		m.Step(dt)
	}
	if md.dragAnchor != nil {
		md.dragAnchor.Step(dt)
	}
}

// StartDrag pins an anchor at pos and attaches a constant-pull drag
// spring to the nearest mass. No-op on an empty model; a second call
// moves the existing drag.
func (md *Model) StartDrag(pos vect.Vec) {
	target := md.nearest(pos)
	if target == nil {
		return
	}
	md.dragAnchor = phys.NewMass(dragAnchorID, pos, phys.DefaultMass, true)
	md.drag = phys.NewDragSpring(md.dragAnchor, target, md.pull)
}

// EndDrag releases the grabbed mass.
func (md *Model) EndDrag() {
	md.dragAnchor = nil
	md.drag = nil
}

func (md *Model) nearest(pos vect.Vec) *phys.Mass {
	var best *phys.Mass
	bestDist := math.Inf(1)
	for _, m := range md.masses {
		if d := vect.Dist(pos, m.Pos); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// Clear drops every mass and spring, ending any drag in progress.
func (md *Model) Clear() {
	md.masses = nil
	md.links = nil
	md.byID = make(map[string]*phys.Mass)
	md.EndDrag()
}

// Load reads a model description file and replaces the current masses
// and springs. The load is atomic: the file parses into fresh
// collections and the live ones are swapped only on success.
//
// Grammar, one record per line, whitespace-tokenized:
//
//	mass <id> <x> <y> [m]    m <= 0 declares a pinned mass of |m|
//	spring <id1> <id2> <restLength> <k>
//
// Springs must reference ids declared earlier in the same file. Unknown
// keywords are skipped.
func (md *Model) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	var masses []*phys.Mass
	byID := make(map[string]*phys.Mass)
	var links []phys.Linker

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case massKeyword:
			m, err := parseMass(fields[1:])
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			if _, dup := byID[m.ID]; dup {
				return recordErr(path, lineNo, fmt.Errorf("%w: %q", ErrDuplicateMass, m.ID))
			}
			masses = append(masses, m)
			byID[m.ID] = m

		case springKeyword:
			s, err := parseSpring(fields[1:], byID)
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			links = append(links, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("model: read %s: %w", path, err)
	}

	md.Clear()
	md.masses = masses
	md.byID = byID
	md.links = links
	return nil
}

// Save writes the masses and springs back out in the Load grammar.
func (md *Model) Save(path string) error {
	var b strings.Builder
	for _, m := range md.masses {
		mv := m.M
		if m.Pinned {
			mv = -mv
		}
		fmt.Fprintf(&b, "%s %s %g %g %g\n", massKeyword, m.ID, m.Pos.X, m.Pos.Y, mv)
	}
	for _, link := range md.links {
		s, ok := link.(*phys.Spring)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s %s %s %g %g\n", springKeyword, s.Start.ID, s.End.ID, s.RestLength, s.K)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("model: write %s: %w", path, err)
	}
	return nil
}

func parseMass(fields []string) (*phys.Mass, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return nil, fmt.Errorf("%w: mass wants id x y [m], got %d fields", ErrBadRecord, len(fields))
	}
	id := fields[0]
	vals, err := parseFloats(fields[1:])
	if err != nil {
		return nil, err
	}

	m := phys.DefaultMass
	pinned := false
	if len(vals) == 3 {
		m = vals[2]
		if m <= 0 {
			pinned = true
			m = -m
			if m == 0 {
				m = phys.DefaultMass
			}
		}
	}
	return phys.NewMass(id, vect.New(vals[0], vals[1]), m, pinned), nil
}

func parseSpring(fields []string, byID map[string]*phys.Mass) (*phys.Spring, error) {
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: spring wants id1 id2 rest k, got %d fields", ErrBadRecord, len(fields))
	}
	start, ok := byID[fields[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMass, fields[0])
	}
	end, ok := byID[fields[1]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMass, fields[1])
	}
	if start == end {
		return nil, fmt.Errorf("%w: spring connects %q to itself", ErrBadRecord, fields[0])
	}
	vals, err := parseFloats(fields[2:])
	if err != nil {
		return nil, err
	}
	return phys.NewSpring(start, end, vals[0], vals[1]), nil
}

func parseFloats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrBadRecord, f)
		}
		vals[i] = v
	}
	return vals, nil
}

func recordErr(path string, line int, err error) error {
	return fmt.Errorf("%s:%d: %w", path, line, err)
}
