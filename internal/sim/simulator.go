package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/argonmd/internal/compute"
	"github.com/san-kum/argonmd/internal/integrators"
	"github.com/san-kum/argonmd/internal/md"
)

// Simulator owns the fixed step loop: force evaluation, then one stepper
// move, then diagnostics. The state is passed by exclusive reference
// through each phase; a force call always completes before the move reads
// its results.
type Simulator struct {
	backend   compute.Backend
	stepper   *integrators.Stepper
	metrics   []Metric
	observers []Observer
}

func New(backend compute.Backend) *Simulator {
	return &Simulator{
		backend: backend,
		stepper: integrators.NewStepper(),
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Backend() compute.Backend { return s.backend }

// Step advances the state one iteration and returns its diagnostics.
func (s *Simulator) Step(st *md.State) (Diagnostics, error) {
	if err := s.backend.Forces(st); err != nil {
		return Diagnostics{}, fmt.Errorf("forces: %w", err)
	}
	if err := s.stepper.Step(st, s.backend); err != nil {
		return Diagnostics{}, err
	}
	return Diagnostics{
		Step: st.Iter - 1,
		Time: st.Time,
		Up:   st.Up,
		Uk:   st.Uk,
		Utot: st.Utot,
		Tc:   st.Tc,
	}, nil
}

func (s *Simulator) Run(ctx context.Context, st *md.State, cfg Config) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}

	result := &Result{
		Series:  make([]Diagnostics, 0, cfg.Steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		d, err := s.Step(st)
		if err != nil {
			return result, fmt.Errorf("step %d: %w", i+1, err)
		}

		result.Series = append(result.Series, d)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(d)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, d)
		}

		if cfg.Validate {
			if err := st.Validate(); err != nil {
				result.Errors = append(result.Errors,
					md.SimError{Step: d.Step, Time: d.Time, Message: err.Error()})
				break
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
