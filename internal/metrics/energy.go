package metrics

import (
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Kinetic sums ½·m·|v|² over the bodies that move on their own. Static
// bodies are skipped even if they carry a stale velocity.
func Kinetic(w *physics.World) float64 {
	total := 0.0
	for _, b := range w.Bodies() {
		if b.Static || !b.Alive {
			continue
		}
		total += 0.5 * b.Mass * r2.Dot(b.Velocity, b.Velocity)
	}
	return total
}

type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *physics.World, r physics.StepResult) {
	e.totalEnergy += Kinetic(w)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}
