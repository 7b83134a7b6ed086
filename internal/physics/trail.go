package physics

import "gonum.org/v1/gonum/spatial/r2"

// Trail is a bounded FIFO of sampled centers. Once full, the oldest point is
// dropped before a new one is appended.
type Trail struct {
	points []r2.Vec
	size   int
}

func NewTrail(size int) *Trail {
	if size < 1 {
		size = 1
	}
	return &Trail{points: make([]r2.Vec, 0, size), size: size}
}

func (t *Trail) Push(p r2.Vec) {
	if len(t.points) == t.size {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.size-1]
	}
	t.points = append(t.points, p)
}

func (t *Trail) Len() int { return len(t.points) }
func (t *Trail) Cap() int { return t.size }

// Points returns the samples oldest first. The slice is only valid until the
// next Push.
func (t *Trail) Points() []r2.Vec { return t.points }

func (t *Trail) Reset() { t.points = t.points[:0] }
