package sim

import (
	"fmt"

	"github.com/san-kum/springies/internal/model"
)

// Metric aggregates a scalar over a run, observed once per tick before
// the step is taken.
type Metric interface {
	Name() string
	Observe(md *model.Model, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(md *model.Model, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 25.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Frame is one recorded tick: the x,y position of every mass in model
// order, flattened.
type Frame []float64

// Snapshot captures the current mass positions of a model.
func Snapshot(md *model.Model) Frame {
	masses := md.Masses()
	f := make(Frame, 0, len(masses)*2)
	for _, m := range masses {
		f = append(f, m.Pos.X, m.Pos.Y)
	}
	return f
}

type Result struct {
	Frames     []Frame
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// SimError marks the tick at which the state went bad.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
