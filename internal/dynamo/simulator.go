package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: got %d states, system has %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; t < cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var newX State
		var err error

		if cfg.Adaptive {
			newX, dt, err = s.adaptiveStep(x, t, dt, cfg)
		} else {
			newX, err = s.integrator.Step(s.dyn, x, t, dt)
		}
		if err != nil {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrNumericDomain}
		}

		x = newX
		t += dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrConfiguration, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrConfiguration, cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrConfiguration)
	}
	return nil
}

func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, dtNew, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, dt, err
		}
		dtNew = math.Min(math.Max(dtNew, cfg.MinDt), cfg.MaxDt)
		return newX, dtNew, nil
	}

	// Step doubling for integrators without built-in error estimation.
	x1, err := s.integrator.Step(s.dyn, x, t, dt)
	if err != nil {
		return nil, dt, err
	}
	xHalf, err := s.integrator.Step(s.dyn, x, t, dt/2)
	if err != nil {
		return nil, dt, err
	}
	x2, err := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)
	if err != nil {
		return nil, dt, err
	}

	errEst := 0.0
	for i := range x1 {
		errEst += (x1[i] - x2[i]) * (x1[i] - x2[i])
	}
	errEst = math.Sqrt(errEst)

	if errEst > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return nil, dt, ErrStepTooSmall
		}
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	if errEst < cfg.Tolerance/10 && dt < cfg.MaxDt {
		dt = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, nil
}

// RunWithCallback steps the simulation, handing each state to callback.
// Returning false from the callback stops the run without error.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		newX, err := s.integrator.Step(s.dyn, x, t, dt)
		if err != nil {
			return err
		}
		if cfg.ValidateState && !newX.IsValid() {
			return fmt.Errorf("%w at t=%.6f", ErrNumericDomain, t)
		}
		x = newX
		t += dt
	}

	return nil
}
