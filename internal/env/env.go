// Package env owns the force-field configuration of a running
// simulation: the gravity, viscosity, and center-of-mass fields, the
// four wall forces, and the scalar parameters behind them. It reacts to
// toggle commands and can reload its parameters from an environment
// description file while the simulation runs.
package env

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/springies/internal/force"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

// ErrBadRecord indicates a malformed line in an environment file.
var ErrBadRecord = errors.New("env: malformed record")

// Environment file keywords.
const (
	gravityKeyword    = "gravity"
	viscosityKeyword  = "viscosity"
	centerMassKeyword = "centerMass"
	wallKeyword       = "wall"
)

// Params are the scalar field parameters. Angles are in degrees, the
// unit the description files use.
type Params struct {
	GravityAngle     float64 `yaml:"gravity_angle"`
	GravityMagnitude float64 `yaml:"gravity_magnitude"`
	ViscosityScale   float64 `yaml:"viscosity_scale"`
	FieldMagnitude   float64 `yaml:"field_magnitude"`
	FieldOrder       float64 `yaml:"field_order"`
	WallMagnitude    float64 `yaml:"wall_magnitude"`
	WallExponent     float64 `yaml:"wall_exponent"`
}

// DefaultParams mirror the historical simulator defaults: gravity
// straight down, mild drag, a gentle inverse-square field, and
// inverse-square walls.
func DefaultParams() Params {
	return Params{
		GravityAngle:     90,
		GravityMagnitude: 10,
		ViscosityScale:   0.2,
		FieldMagnitude:   100,
		FieldOrder:       2,
		WallMagnitude:    50,
		WallExponent:     2,
	}
}

// Environment holds the live force instances. All fields start enabled.
type Environment struct {
	gravity    *force.Gravity
	viscosity  *force.Viscosity
	centerMass *force.CenterMass
	walls      *force.WallField
}

func New(p Params) *Environment {
	return &Environment{
		gravity:    force.NewGravity(vect.Radians(p.GravityAngle), p.GravityMagnitude, true),
		viscosity:  force.NewViscosity(p.ViscosityScale, true),
		centerMass: force.NewCenterMass(p.FieldMagnitude, p.FieldOrder, true),
		walls:      force.NewWallField(p.WallMagnitude, p.WallExponent, true),
	}
}

// NetForce sums the enabled field contributions against one mass.
// Query-only: it never consumes input and never fails.
func (e *Environment) NetForce(m *phys.Mass, ctx force.Context) vect.Vec {
	total := e.gravity.Contribution(m, ctx)
	total = total.Add(e.viscosity.Contribution(m, ctx))
	total = total.Add(e.centerMass.Contribution(m, ctx))
	total = total.Add(e.walls.Contribution(m, ctx))
	return total
}

// Apply flips the enabled flag selected by cmd. Unknown or None
// commands are ignored.
func (e *Environment) Apply(cmd input.Command) {
	switch cmd {
	case input.ToggleGravity:
		e.gravity.Toggle()
	case input.ToggleViscosity:
		e.viscosity.Toggle()
	case input.ToggleCenterMass:
		e.centerMass.Toggle()
	case input.ToggleWallTop:
		e.walls.Wall(force.Top).Toggle()
	case input.ToggleWallRight:
		e.walls.Wall(force.Right).Toggle()
	case input.ToggleWallBottom:
		e.walls.Wall(force.Bottom).Toggle()
	case input.ToggleWallLeft:
		e.walls.Wall(force.Left).Toggle()
	}
}

// Forces lists every toggleable field, walls individually, for status
// display and tests.
func (e *Environment) Forces() []force.Force {
	out := []force.Force{e.gravity, e.viscosity, e.centerMass}
	for _, w := range e.walls.Walls {
		out = append(out, w)
	}
	return out
}

func (e *Environment) Gravity() *force.Gravity       { return e.gravity }
func (e *Environment) Viscosity() *force.Viscosity   { return e.viscosity }
func (e *Environment) CenterMass() *force.CenterMass { return e.centerMass }
func (e *Environment) Walls() *force.WallField       { return e.walls }

// wallRecord is one parsed wall line, applied only after the whole file
// parses cleanly.
type wallRecord struct {
	side      force.Side
	magnitude float64
	exponent  float64
}

// Load reads an environment description file. The load is atomic: every
// line is parsed first and the running configuration is only touched
// when no error was hit, so a failed reload leaves the simulation
// unaffected. Enabled flags survive a reload. Lines with unknown
// keywords are skipped.
func (e *Environment) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("env: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		gravity    *force.Gravity
		viscosity  *force.Viscosity
		centerMass *force.CenterMass
		walls      []wallRecord
	)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case gravityKeyword:
			vals, err := parseFloats(fields[1:], 2)
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			gravity = force.NewGravity(vect.Radians(vals[0]), vals[1], e.gravity.Enabled())

		case viscosityKeyword:
			vals, err := parseFloats(fields[1:], 1)
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			viscosity = force.NewViscosity(vals[0], e.viscosity.Enabled())

		case centerMassKeyword:
			vals, err := parseFloats(fields[1:], 2)
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			centerMass = force.NewCenterMass(vals[0], vals[1], e.centerMass.Enabled())

		case wallKeyword:
			rec, err := parseWall(fields[1:])
			if err != nil {
				return recordErr(path, lineNo, err)
			}
			walls = append(walls, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("env: read %s: %w", path, err)
	}

	if gravity != nil {
		e.gravity = gravity
	}
	if viscosity != nil {
		e.viscosity = viscosity
	}
	if centerMass != nil {
		e.centerMass = centerMass
	}
	for _, rec := range walls {
		w := e.walls.Wall(rec.side)
		w.Magnitude = rec.magnitude
		w.Exponent = rec.exponent
	}
	return nil
}

func parseWall(fields []string) (wallRecord, error) {
	if len(fields) != 3 {
		return wallRecord{}, fmt.Errorf("%w: wall wants 3 fields, got %d", ErrBadRecord, len(fields))
	}
	side, err := strconv.Atoi(fields[0])
	if err != nil {
		return wallRecord{}, fmt.Errorf("%w: wall side %q", ErrBadRecord, fields[0])
	}
	if side < int(force.Top) || side > int(force.Left) {
		return wallRecord{}, fmt.Errorf("%w: wall side %d out of range 1-4", ErrBadRecord, side)
	}
	vals, err := parseFloats(fields[1:], 2)
	if err != nil {
		return wallRecord{}, err
	}
	return wallRecord{side: force.Side(side), magnitude: vals[0], exponent: vals[1]}, nil
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("%w: want %d numeric fields, got %d", ErrBadRecord, want, len(fields))
	}
	vals := make([]float64, want)
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
