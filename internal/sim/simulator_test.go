package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestSim(seed int64) *Simulator {
	cfg := config.DefaultConfig()
	world := physics.NewWorld()
	ctrl := control.New(cfg, world, nil, rand.New(rand.NewSource(seed)))
	return New(cfg, world, ctrl)
}

// spawnAt presses the canvas once at tick 0.
func spawnAt(x, y float64) EventSource {
	return EventFunc(func(tick int) []control.Event {
		if tick == 0 {
			return []control.Event{control.Down(x, y), control.Up(x, y)}
		}
		return nil
	})
}

func TestSimulatorRun(t *testing.T) {
	sim := newTestSim(1)

	result, err := sim.Run(context.Background(), spawnAt(250, 250), RunConfig{Dt: 0.01, Ticks: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 10 || sim.Ticks() != 10 {
		t.Errorf("expected 10 ticks, got %d/%d", result.Ticks, sim.Ticks())
	}
	if result.Bodies != 1 {
		t.Errorf("expected 1 body, got %d", result.Bodies)
	}
	if got := sim.World().Clock(); got < 0.0999 || got > 0.1001 {
		t.Errorf("expected clock 0.1, got %v", got)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := newTestSim(1)

	tests := []struct {
		name string
		rc   RunConfig
	}{
		{"zero dt", RunConfig{Dt: 0, Ticks: 10}},
		{"negative dt", RunConfig{Dt: -0.1, Ticks: 10}},
		{"zero ticks", RunConfig{Dt: 0.1, Ticks: 0}},
		{"negative ticks", RunConfig{Dt: 0.1, Ticks: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), nil, tt.rc); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCancelled(t *testing.T) {
	sim := newTestSim(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, nil, RunConfig{Dt: 0.01, Ticks: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected an empty partial result, got %+v", result)
	}
}

// modeButton answers only for the mode button, placed at (-1, -1).
type modeButton struct{}

func (modeButton) Hit(b control.Button, p r2.Vec) bool {
	return b == control.ButtonMode && p == r2.Vec{X: -1, Y: -1}
}

func TestSimulatorForgetsRemovedBodies(t *testing.T) {
	cfg := config.DefaultConfig()
	world := physics.NewWorld()
	ctrl := control.New(cfg, world, modeButton{}, rand.New(rand.NewSource(1)))
	sim := New(cfg, world, ctrl)
	far := cfg.KillDistance * 2

	res := sim.Tick([]control.Event{
		control.Down(100, 100),
		control.Down(-1, -1),
		control.Down(100, 100),
		control.Move(far, far),
	}, 0.01)

	if len(res.Removed) != 1 {
		t.Fatalf("expected the dragged star to be culled, removed %v", res.Removed)
	}
	if world.Len() != 0 {
		t.Errorf("expected an empty world, have %d bodies", world.Len())
	}
	if _, ok := ctrl.Selected(); ok || ctrl.View().Selected != 0 {
		t.Error("controller still holds the removed body")
	}
}

type testMetric struct {
	count  int
	bodies int
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(w *physics.World, r physics.StepResult) {
	t.count++
	t.bodies += w.Len()
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return float64(t.bodies) / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.bodies = 0
}

type testObserver struct{ ticks []int }

func (o *testObserver) OnTick(tick int, w *physics.World, r physics.StepResult) {
	o.ticks = append(o.ticks, tick)
}

func TestSimulatorMetrics(t *testing.T) {
	sim := newTestSim(1)

	metric := &testMetric{}
	obs := &testObserver{}
	sim.AddMetric(metric)
	sim.AddObserver(obs)

	result, err := sim.Run(context.Background(), spawnAt(250, 250), RunConfig{Dt: 0.01, Ticks: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["test"]; !ok || v != 1 {
		t.Errorf("expected metric value 1, got %v (%v)", v, ok)
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if len(obs.ticks) != 10 || obs.ticks[0] != 0 || obs.ticks[9] != 9 {
		t.Errorf("unexpected observed ticks %v", obs.ticks)
	}
}

func TestEnsemble(t *testing.T) {
	factory := func(seed int64) (*Simulator, EventSource, error) {
		return newTestSim(seed), spawnAt(250, 250), nil
	}

	results, err := NewEnsemble(factory, 4, 10).Run(context.Background(), RunConfig{Dt: 0.01, Ticks: 5})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Ticks != 5 || r.Bodies != 1 {
			t.Errorf("run %d: %+v", i, r)
		}
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(seed int64) (*Simulator, EventSource, error) {
		if seed == 2 {
			return nil, nil, boom
		}
		return newTestSim(seed), nil, nil
	}

	if _, err := NewEnsemble(factory, 3, 0).Run(context.Background(), RunConfig{Dt: 0.01, Ticks: 5}); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}
