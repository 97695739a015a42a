// Package sim is the fixed-rate tick driver: it calls Model.Update once
// per dt, records position frames, feeds metrics and observers, and
// stops early when the state goes invalid or the context is canceled.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/springies/internal/model"
)

type Runner struct {
	model     *model.Model
	metrics   []Metric
	observers []Observer
}

func New(md *model.Model) *Runner {
	return &Runner{
		model:     md,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) Model() *model.Model    { return r.model }
func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the model for cfg.Duration at fixed cfg.Dt. Every tick
// runs to completion; cancellation is only observed between ticks.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	return r.RunConfig(ctx, DefaultConfig())
}

func (r *Runner) RunConfig(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Snapshot(r.model))
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(r.model, t)
		}

		r.model.Update(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !stateValid(r.model) {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		for _, obs := range r.observers {
			obs.OnTick(r.model, t)
		}

		result.Frames = append(result.Frames, Snapshot(r.model))
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the model until the callback returns false or
// the duration elapses. Used by live views that own their own clock.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(md *model.Model, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(r.model, t) {
			return nil
		}

		r.model.Update(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !stateValid(r.model) {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func stateValid(md *model.Model) bool {
	for _, m := range md.Masses() {
		if !m.Pos.IsValid() || !m.Vel.IsValid() {
			return false
		}
	}
	return true
}
