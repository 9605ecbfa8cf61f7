package dynamo

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulator drives one body for a fixed number of steps. Controllers run
// before every step attempt; metrics and observers see every step that
// advanced.
type Simulator struct {
	body        *Body
	controllers []Controller
	metrics     []Metric
	observers   []Observer
}

func NewSimulator(b *Body) *Simulator {
	return &Simulator{
		body:        b,
		controllers: make([]Controller, 0),
		metrics:     make([]Metric, 0),
		observers:   make([]Observer, 0),
	}
}

func (s *Simulator) AddController(c Controller) { s.controllers = append(s.controllers, c) }
func (s *Simulator) AddMetric(m Metric)         { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Body() *Body { return s.body }

// Run steps the body cfg.Steps times. Positions of the tracked nodes are
// sampled before the first step and then every cfg.SampleEvery advanced
// steps. Steps the body declines are counted in Result.Skipped and do not
// advance time. On cancellation the partial result is returned with the
// context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := cfg.Steps/cfg.SampleEvery + 1
	result := &Result{
		Times:     make([]float64, 0, samples),
		Track:     append([]int(nil), cfg.Track...),
		Positions: make([][]mgl64.Vec3, 0, samples),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	s.sample(result, t)

	var err error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		for _, c := range s.controllers {
			c.Update(s.body, s.body.Params().Dt)
		}

		if !s.body.Step() {
			result.Skipped++
			continue
		}
		t += s.body.Params().Dt
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s.body, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.body, t)
		}

		if result.StepsTaken%cfg.SampleEvery == 0 {
			s.sample(result, t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

func (s *Simulator) sample(r *Result, t float64) {
	nodes := s.body.Nodes()
	row := make([]mgl64.Vec3, len(r.Track))
	for i, idx := range r.Track {
		row[i] = nodes[idx].Pos
	}
	r.Times = append(r.Times, t)
	r.Positions = append(r.Positions, row)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("dynamo: steps must be non-negative, got %d", cfg.Steps)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("dynamo: sample interval must be positive, got %d", cfg.SampleEvery)
	}
	n := len(s.body.Nodes())
	for _, idx := range cfg.Track {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: tracked node %d with %d nodes", ErrIndexOutOfRange, idx, n)
		}
	}
	return nil
}
