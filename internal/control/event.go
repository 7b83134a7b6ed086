package control

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// ParseEventKind accepts the names produced by EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "down":
		return PointerDown, nil
	case "move":
		return PointerMove, nil
	case "up":
		return PointerUp, nil
	}
	return 0, fmt.Errorf("unknown pointer event %q", s)
}

// Event is a pointer event in canvas coordinates.
type Event struct {
	Kind EventKind
	Pos  r2.Vec
}

func Down(x, y float64) Event { return Event{Kind: PointerDown, Pos: r2.Vec{X: x, Y: y}} }
func Move(x, y float64) Event { return Event{Kind: PointerMove, Pos: r2.Vec{X: x, Y: y}} }
func Up(x, y float64) Event   { return Event{Kind: PointerUp, Pos: r2.Vec{X: x, Y: y}} }

// Button names an on-screen control.
type Button int

const (
	ButtonMode Button = iota
	ButtonKind
	ButtonVelocity
	ButtonForce
	ButtonPath
	ButtonStatic
	ButtonClear
	ButtonKill
	ButtonDelete

	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonMode:
		return "mode"
	case ButtonKind:
		return "kind"
	case ButtonVelocity:
		return "velocity"
	case ButtonForce:
		return "force"
	case ButtonPath:
		return "path"
	case ButtonStatic:
		return "static"
	case ButtonClear:
		return "clear"
	case ButtonKill:
		return "kill"
	case ButtonDelete:
		return "delete"
	}
	return "unknown"
}

// ParseButton accepts the names produced by Button.String.
func ParseButton(s string) (Button, error) {
	for b := ButtonMode; b < NumButtons; b++ {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// Buttons reports whether a canvas position falls within a button.
type Buttons interface {
	Hit(b Button, p r2.Vec) bool
}
