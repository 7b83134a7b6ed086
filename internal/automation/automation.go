package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/layout"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted, headless sandbox session.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Preset      string `yaml:"preset,omitempty"`
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`
	Seed        int64  `yaml:"seed,omitempty"`
	Ticks       int    `yaml:"ticks"`
	// Dt defaults to one frame at the configured FPS.
	Dt float64 `yaml:"dt,omitempty"`

	Integration    string `yaml:"integration,omitempty"`
	DrawPath       *bool  `yaml:"draw_path,omitempty"`
	DrawForceLines *bool  `yaml:"draw_force_lines,omitempty"`
	Kill           *bool  `yaml:"kill,omitempty"`
	PlanetVelocity *bool  `yaml:"planet_velocity,omitempty"`

	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is one pointer event replayed before the given tick. Setting
// Button presses the centre of that on-screen button instead of X/Y.
type ScriptEvent struct {
	Tick   int     `yaml:"tick"`
	Type   string  `yaml:"type,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Button string  `yaml:"button,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if scenario.Ticks <= 0 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, scenario.Ticks)
	}
	if scenario.Dt < 0 {
		return nil, fmt.Errorf("%w: dt must not be negative, got %f", ErrInvalidScenario, scenario.Dt)
	}
	return &scenario, nil
}

// Config resolves the preset and overrides into a validated configuration.
func (sc *Scenario) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if sc.Preset != "" {
		if cfg = config.GetPreset(sc.Preset); cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidScenario, sc.Preset)
		}
	}

	w, h := cfg.Width, cfg.Height
	if sc.Width != 0 {
		w = sc.Width
	}
	if sc.Height != 0 {
		h = sc.Height
	}
	cfg.Derive(w, h)

	if sc.Integration != "" {
		cfg.Integration = sc.Integration
	}
	setBool(&cfg.DrawPath, sc.DrawPath)
	setBool(&cfg.DrawForceLines, sc.DrawForceLines)
	setBool(&cfg.Kill, sc.Kill)
	setBool(&cfg.PlanetVelocity, sc.PlanetVelocity)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (sc *Scenario) dt(cfg *config.Config) float64 {
	if sc.Dt > 0 {
		return sc.Dt
	}
	return 1 / float64(cfg.FPS)
}

type script map[int][]control.Event

func (s script) Poll(tick int) []control.Event { return s[tick] }

func (sc *Scenario) script(l *layout.Layout) (script, error) {
	s := make(script)
	for i, ev := range sc.Events {
		if ev.Tick < 0 || ev.Tick >= sc.Ticks {
			return nil, fmt.Errorf("%w: event %d at tick %d outside [0,%d)", ErrInvalidScenario, i, ev.Tick, sc.Ticks)
		}

		kind := control.PointerDown
		if ev.Type != "" {
			k, err := control.ParseEventKind(ev.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidScenario, i, err)
			}
			kind = k
		}

		e := control.Event{Kind: kind}
		e.Pos.X, e.Pos.Y = ev.X, ev.Y
		if ev.Button != "" {
			b, err := control.ParseButton(ev.Button)
			if err != nil {
				return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidScenario, i, err)
			}
			e.Pos = l.Rect(b).Center()
		}
		s[ev.Tick] = append(s[ev.Tick], e)
	}
	return s, nil
}

// Build wires a fresh world, controller and simulator for the scenario,
// seeded with seed.
func (sc *Scenario) Build(seed int64) (*sim.Simulator, sim.EventSource, error) {
	cfg, err := sc.Config()
	if err != nil {
		return nil, nil, err
	}

	l := layout.New(cfg.Width, cfg.Height)
	src, err := sc.script(l)
	if err != nil {
		return nil, nil, err
	}

	world := physics.NewWorld()
	ctrl := control.New(cfg, world, l, rand.New(rand.NewSource(seed)))
	return sim.New(cfg, world, ctrl), src, nil
}

func (sc *Scenario) seed() int64 {
	if sc.Seed == 0 {
		return time.Now().UnixNano()
	}
	return sc.Seed
}

type Options struct {
	// StabilityThreshold is the speed above which a tick counts as unstable.
	// Zero disables the stability metric.
	StabilityThreshold float64
	Observers          []sim.Observer
}

// Report is the outcome of one scenario run, with per-tick series.
type Report struct {
	Name    string
	Seed    int64
	Ticks   int
	Bodies  []float64
	Energy  []float64
	Removed int
	Final   int
	Metrics map[string]float64
}

type recorder struct{ report *Report }

func (r recorder) OnTick(tick int, w *physics.World, res physics.StepResult) {
	r.report.Bodies = append(r.report.Bodies, float64(w.Len()))
	r.report.Energy = append(r.report.Energy, metrics.Kinetic(w))
}

// RunScenario replays the scenario once and records its series.
func RunScenario(ctx context.Context, sc *Scenario, opts Options) (*Report, error) {
	seed := sc.seed()
	s, src, err := sc.Build(seed)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Name:   sc.Name,
		Seed:   seed,
		Bodies: make([]float64, 0, sc.Ticks),
		Energy: make([]float64, 0, sc.Ticks),
	}
	addMetrics(s, opts)
	s.AddObserver(recorder{report})
	for _, o := range opts.Observers {
		s.AddObserver(o)
	}

	cfg := s.Config()
	result, err := s.Run(ctx, src, sim.RunConfig{Dt: sc.dt(cfg), Ticks: sc.Ticks})
	if result != nil {
		report.Ticks = result.Ticks
		report.Removed = result.Removed
		report.Final = result.Bodies
		report.Metrics = result.Metrics
	}
	if err != nil {
		return report, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return report, nil
}

func addMetrics(s *sim.Simulator, opts Options) {
	s.AddMetric(metrics.NewBodyCount())
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(metrics.NewRemovals())
	if opts.StabilityThreshold > 0 {
		s.AddMetric(metrics.NewStability(opts.StabilityThreshold))
	}
}

// RunTrials replays the scenario under numTrials consecutive seeds in
// parallel. Random star and planet sizes differ between trials.
func RunTrials(ctx context.Context, sc *Scenario, numTrials int, opts Options) ([]*sim.Result, error) {
	if numTrials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidScenario, numTrials)
	}

	cfg, err := sc.Config()
	if err != nil {
		return nil, err
	}

	factory := func(seed int64) (*sim.Simulator, sim.EventSource, error) {
		s, src, err := sc.Build(seed)
		if err != nil {
			return nil, nil, err
		}
		addMetrics(s, opts)
		return s, src, nil
	}

	rc := sim.RunConfig{Dt: sc.dt(cfg), Ticks: sc.Ticks}
	return sim.NewEnsemble(factory, numTrials, sc.seed()).Run(ctx, rc)
}

// TrialStats counts the trials that kept every body they created.
func TrialStats(results []*sim.Result) (intact int, lossy int) {
	for _, r := range results {
		if r.Removed == 0 {
			intact++
		} else {
			lossy++
		}
	}
	return
}
