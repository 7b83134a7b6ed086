package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/physics"
)

// Simulator ties a world to the controller that edits it. It is driven one
// tick at a time by a frontend, or in bulk by Run.
type Simulator struct {
	cfg       *config.Config
	world     *physics.World
	ctrl      *control.Controller
	metrics   []Metric
	observers []Observer
	tick      int
}

func New(cfg *config.Config, world *physics.World, ctrl *control.Controller) *Simulator {
	return &Simulator{
		cfg:       cfg,
		world:     world,
		ctrl:      ctrl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Config() *config.Config          { return s.cfg }
func (s *Simulator) World() *physics.World           { return s.world }
func (s *Simulator) Controller() *control.Controller { return s.ctrl }
func (s *Simulator) Ticks() int                      { return s.tick }

// Tick applies pending input, advances the world once and reports the
// outcome to metrics and observers.
func (s *Simulator) Tick(events []control.Event, dt float64) physics.StepResult {
	if s.ctrl != nil {
		for _, ev := range events {
			s.ctrl.Handle(ev)
		}
	}

	res := s.world.Step(s.cfg, dt)
	if s.ctrl != nil {
		s.ctrl.Forget(res.Removed)
	}

	for _, m := range s.metrics {
		m.Observe(s.world, res)
	}
	for _, obs := range s.observers {
		obs.OnTick(s.tick, s.world, res)
	}
	s.tick++
	return res
}

// Run advances the simulator rc.Ticks times, polling src before each tick.
// src may be nil for an unattended run.
func (s *Simulator) Run(ctx context.Context, src EventSource, rc RunConfig) (*Result, error) {
	if err := s.validateConfig(rc); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	for i := 0; i < rc.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		var events []control.Event
		if src != nil {
			events = src.Poll(s.tick)
		}
		res := s.Tick(events, rc.Dt)
		result.Removed += len(res.Removed)
		result.Ticks++
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	result.Bodies = s.world.Len()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(rc RunConfig) error {
	if rc.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", rc.Dt)
	}
	if rc.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", rc.Ticks)
	}
	if s.cfg == nil || s.world == nil {
		return fmt.Errorf("simulator needs a config and a world")
	}
	return nil
}
