package metrics

import "github.com/san-kum/gravbox/internal/physics"

// BodyCount is the mean number of bodies alive after each tick.
type BodyCount struct {
	name    string
	sum     int
	samples int
}

func NewBodyCount() *BodyCount {
	return &BodyCount{name: "bodies"}
}

func (c *BodyCount) Name() string { return c.name }

func (c *BodyCount) Observe(w *physics.World, r physics.StepResult) {
	c.sum += w.Len()
	c.samples++
}

func (c *BodyCount) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *BodyCount) Reset() {
	c.sum = 0
	c.samples = 0
}

// Removals counts bodies dropped by the world, culled or deleted.
type Removals struct {
	name  string
	total int
}

func NewRemovals() *Removals {
	return &Removals{name: "removals"}
}

func (c *Removals) Name() string { return c.name }

func (c *Removals) Observe(w *physics.World, r physics.StepResult) {
	c.total += len(r.Removed)
}

func (c *Removals) Value() float64 { return float64(c.total) }

func (c *Removals) Reset() { c.total = 0 }
