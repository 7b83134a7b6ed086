// Package layout places the sandbox buttons along the bottom of the canvas
// and answers hit tests for the interaction controller.
package layout

import (
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Rect struct {
	X, Y, W, H float64
}

// Contains is strict on every edge: a press on a button border misses.
func (r Rect) Contains(p r2.Vec) bool {
	return r.X < p.X && p.X < r.X+r.W && r.Y < p.Y && p.Y < r.Y+r.H
}

func (r Rect) Center() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// slots maps each button to its position in the strip.
var slots = [control.NumButtons]int{
	control.ButtonMode:     0,
	control.ButtonKind:     1,
	control.ButtonVelocity: 2,
	control.ButtonForce:    3,
	control.ButtonPath:     4,
	control.ButtonStatic:   5,
	control.ButtonClear:    6,
	control.ButtonKill:     7,
	control.ButtonDelete:   8,
}

type Layout struct {
	FontSize    int
	ButtonW     float64
	ButtonH     float64
	ButtonSpace float64
	ButtonY     float64
	Border      float64

	rects [control.NumButtons]Rect
}

// New derives the button strip from the canvas size.
func New(width, height int) *Layout {
	l := &Layout{
		FontSize:    width / 40,
		ButtonW:     float64(width / 10),
		ButtonH:     float64(width) / 14,
		ButtonSpace: float64(width / 80),
		Border:      1,
	}
	l.ButtonY = float64(height) - l.ButtonH - l.ButtonH/3

	for b, n := range slots {
		l.rects[b] = Rect{
			X: float64(n) * (l.ButtonW + l.ButtonSpace),
			Y: l.ButtonY,
			W: l.ButtonW,
			H: l.ButtonH,
		}
	}
	return l
}

func (l *Layout) Rect(b control.Button) Rect { return l.rects[b] }

func (l *Layout) Hit(b control.Button, p r2.Vec) bool {
	if b < 0 || b >= control.NumButtons {
		return false
	}
	return l.rects[b].Contains(p)
}

type Label struct {
	Button control.Button
	Text   string
	Rect   Rect
}

// Labels lists the buttons a renderer should draw for the current state.
// Hidden buttons still receive presses.
func (l *Layout) Labels(v control.View, cfg *config.Config) []Label {
	labels := make([]Label, 0, control.NumButtons)
	add := func(b control.Button, text string) {
		labels = append(labels, Label{Button: b, Text: text, Rect: l.rects[b]})
	}

	if v.Mode == control.Create {
		add(control.ButtonMode, "Create")
		if v.Kind == physics.Planet {
			add(control.ButtonKind, "Planet")
			if cfg.PlanetVelocity {
				add(control.ButtonVelocity, "vel on")
			} else {
				add(control.ButtonVelocity, "vel off")
			}
		} else {
			add(control.ButtonKind, "Star")
		}
	} else {
		add(control.ButtonMode, "Grab")
	}

	if cfg.Kill {
		add(control.ButtonKill, "Kill on")
		if v.HasLastSelected() {
			add(control.ButtonDelete, "Del")
		}
	} else {
		add(control.ButtonKill, "Kill off")
	}

	add(control.ButtonForce, "Force")
	add(control.ButtonClear, "Clear")
	add(control.ButtonPath, "Path")
	if v.HasLastSelected() {
		add(control.ButtonStatic, "Static")
	}
	return labels
}
