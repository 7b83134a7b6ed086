package physics

import (
	"math"

	"github.com/san-kum/gravbox/internal/config"
	"gonum.org/v1/gonum/spatial/r2"
)

// ForceLineScale maps force magnitude to line intensity: weak pulls saturate
// at 1, strong pulls fade towards 0.
const ForceLineScale = 0.0019 / 255

// ForceLine is one attracting pair that passed the distance guard.
type ForceLine struct {
	Source, Target BodyID
	From, To       r2.Vec
	Intensity      float64
}

type StepResult struct {
	Removed    []BodyID
	Contacts   int
	ForceLines int
}

// Step advances the world by one fixed tick. dt only feeds the clock used
// for trail sampling; motion is per tick, not per second.
func (w *World) Step(cfg *config.Config, dt float64) StepResult {
	var res StepResult

	w.clock += dt
	w.forceLines = w.forceLines[:0]

	for i, b := range w.bodies {
		if cfg.Kill && (math.Abs(b.Position.X) > cfg.KillDistance || math.Abs(b.Position.Y) > cfg.KillDistance) {
			b.Alive = false
		}
		if !cfg.DrawPath && b.Trail.Len() > 0 {
			b.Trail.Reset()
		}
		if !b.Alive || b.Static {
			continue
		}
		res.Contacts += w.attract(cfg, i, b)
	}

	res.ForceLines = len(w.forceLines)
	res.Removed = w.compact()
	return res
}

// attract applies every other body's pull to the body at index i and returns
// the number of pairs that passed the guard.
func (w *World) attract(cfg *config.Config, i int, b *Body) int {
	pairwise := cfg.Integration != config.IntegrationTick
	contacts := 0
	center := b.Center()

	for j, src := range w.bodies {
		if j == i {
			continue
		}
		if pairwise {
			center = b.Center()
		}
		srcCenter := src.Center()
		delta := r2.Sub(srcCenter, center)
		c := r2.Norm(delta)

		// guard uses only the attracted body's radius
		if c <= b.Radius {
			continue
		}
		contacts++

		force := cfg.G * src.Mass / (c * c)
		b.Velocity = r2.Add(b.Velocity, r2.Scale(force/c, delta))
		if pairwise {
			b.Position = r2.Add(b.Position, b.Velocity)
		}

		if cfg.DrawForceLines && (j > i || src.Kind == Star) {
			w.forceLines = append(w.forceLines, ForceLine{
				Source:    src.ID,
				Target:    b.ID,
				From:      srcCenter,
				To:        center,
				Intensity: math.Min(ForceLineScale/force, 1),
			})
		}
		if cfg.DrawPath {
			w.sample(cfg, b, center)
		}
	}

	if !pairwise {
		b.Position = r2.Add(b.Position, b.Velocity)
	}
	return contacts
}

// sample advances b's trail timer by the clock time elapsed since its last
// sampling attempt and records center once the sampling period is exceeded.
func (w *World) sample(cfg *config.Config, b *Body, center r2.Vec) {
	b.sampleTimer += w.clock - b.sampleClock
	b.sampleClock = w.clock
	if b.sampleTimer > 1/cfg.PathSampleRate {
		b.Trail.Push(center)
		b.sampleTimer = 0
	}
}
