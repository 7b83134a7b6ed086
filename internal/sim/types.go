package sim

import (
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/physics"
)

type Metric interface {
	Name() string
	Observe(w *physics.World, r physics.StepResult)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, w *physics.World, r physics.StepResult)
}

// EventSource supplies the pointer events to apply before a given tick.
type EventSource interface {
	Poll(tick int) []control.Event
}

// EventFunc adapts a plain function to EventSource.
type EventFunc func(tick int) []control.Event

func (f EventFunc) Poll(tick int) []control.Event { return f(tick) }

type RunConfig struct {
	Dt    float64
	Ticks int
}

type Result struct {
	Ticks   int
	Bodies  int
	Removed int
	Metrics map[string]float64
}
