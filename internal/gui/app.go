package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/layout"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const maxTelemetry = 200

type App struct {
	Sim    *sim.Simulator
	Layout *layout.Layout

	Paused   bool
	ShowHUD  bool
	quit     bool

	// Telemetry is a ring of recent kinetic energy readings.
	Telemetry []float64
}

// initWindow opens a window the size of the canvas and caps the frame rate
// at the configured FPS.
func initWindow(width, height, fps int) {
	rl.InitWindow(int32(width), int32(height), "gravbox")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Simulator, l *layout.Layout) *App {
	return &App{
		Sim:       s,
		Layout:    l,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, l *layout.Layout) {
	cfg := s.Config()
	initWindow(cfg.Width, cfg.Height, cfg.FPS)
	defer rl.CloseWindow()
	NewApp(s, l).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	events := pointerEvents(
		rl.IsMouseButtonPressed(rl.MouseLeftButton),
		delta.X != 0 || delta.Y != 0,
		rl.IsMouseButtonReleased(rl.MouseLeftButton),
		r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)},
	)

	if a.Paused {
		for _, ev := range events {
			a.Sim.Controller().Handle(ev)
		}
		return
	}

	a.Sim.Tick(events, float64(rl.GetFrameTime()))
	a.record(metrics.Kinetic(a.Sim.World()))
}

// pointerEvents turns one frame of mouse state into controller events, in
// press, move, release order.
func pointerEvents(pressed, moved, released bool, pos r2.Vec) []control.Event {
	var events []control.Event
	if pressed {
		events = append(events, control.Event{Kind: control.PointerDown, Pos: pos})
	}
	if moved {
		events = append(events, control.Event{Kind: control.PointerMove, Pos: pos})
	}
	if released {
		events = append(events, control.Event{Kind: control.PointerUp, Pos: pos})
	}
	return events
}

func (a *App) record(v float64) {
	if len(a.Telemetry) == maxTelemetry {
		copy(a.Telemetry, a.Telemetry[1:])
		a.Telemetry = a.Telemetry[:maxTelemetry-1]
	}
	a.Telemetry = append(a.Telemetry, v)
}

func (a *App) status() string {
	v := a.Sim.Controller().View()
	cfg := a.Sim.Config()
	s := fmt.Sprintf("%s %s  bodies %d", v.Mode, v.Kind, a.Sim.World().Len())
	if a.Paused {
		s += "  PAUSED"
	}
	if cfg.DrawForceLines {
		s += "  force"
	}
	if cfg.DrawPath {
		s += "  path"
	}
	return s
}
