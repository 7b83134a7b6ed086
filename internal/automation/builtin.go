package automation

import "sort"

var builtins = map[string]func() *Scenario{
	"orbit":  Orbit,
	"escape": Escape,
}

// Builtin returns a fresh copy of a named built-in scenario.
func Builtin(name string) (*Scenario, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

func ListBuiltins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Orbit places a static star at the centre of a 500x500 canvas and launches
// a planet above it.
func Orbit() *Scenario {
	return &Scenario{
		Name:  "orbit",
		Seed:  1,
		Ticks: 100,
		Dt:    1.0 / 200,
		Events: []ScriptEvent{
			{Tick: 0, X: 250, Y: 250},
			{Tick: 0, Type: "up", X: 250, Y: 250},
			{Tick: 1, Button: "kind"},
			{Tick: 2, X: 250, Y: 100},
			{Tick: 2, Type: "up", X: 250, Y: 100},
		},
	}
}

// Escape drags a planet past the kill distance and lets the world cull it.
func Escape() *Scenario {
	return &Scenario{
		Name:  "escape",
		Seed:  1,
		Ticks: 20,
		Dt:    1.0 / 200,
		Events: []ScriptEvent{
			{Tick: 0, Button: "kind"},
			{Tick: 0, X: 100, Y: 100},
			{Tick: 1, Button: "mode"},
			{Tick: 2, X: 100, Y: 100},
			{Tick: 3, Type: "move", X: 3000, Y: 100},
			{Tick: 4, Type: "up", X: 3000, Y: 100},
		},
	}
}
