package physics

import "gonum.org/v1/gonum/spatial/r2"

// World owns every body. Bodies are kept in a dense ordered slice and indexed
// by ID so handles resolve in O(1) and go stale the moment a body is removed.
type World struct {
	bodies     []*Body
	index      map[BodyID]*Body
	nextID     BodyID
	clock      float64
	forceLines []ForceLine
}

func NewWorld() *World {
	return &World{
		bodies: make([]*Body, 0),
		index:  make(map[BodyID]*Body),
	}
}

func (w *World) Len() int { return len(w.bodies) }

// Bodies returns the ordered bodies. Callers must not append to or reorder
// the slice, and must not keep it across a Step.
func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) At(i int) *Body { return w.bodies[i] }

func (w *World) Get(id BodyID) (*Body, bool) {
	b, ok := w.index[id]
	return b, ok
}

// Clock is the accumulated simulated time in seconds.
func (w *World) Clock() float64 { return w.clock }

// ForceLines returns the attracting pairs recorded during the last Step.
func (w *World) ForceLines() []ForceLine { return w.forceLines }

// Append adds b at the back of the world and returns its new ID.
func (w *World) Append(b *Body) BodyID {
	w.adopt(b)
	w.bodies = append(w.bodies, b)
	return b.ID
}

// Prepend adds b at the front of the world and returns its new ID.
func (w *World) Prepend(b *Body) BodyID {
	w.adopt(b)
	w.bodies = append(w.bodies, nil)
	copy(w.bodies[1:], w.bodies)
	w.bodies[0] = b
	return b.ID
}

func (w *World) adopt(b *Body) {
	w.nextID++
	b.ID = w.nextID
	b.sampleClock = w.clock
	w.index[b.ID] = b
}

// Clear removes every body and returns the IDs that went stale.
func (w *World) Clear() []BodyID {
	removed := make([]BodyID, 0, len(w.bodies))
	for _, b := range w.bodies {
		removed = append(removed, b.ID)
	}
	w.bodies = w.bodies[:0]
	w.index = make(map[BodyID]*Body)
	w.forceLines = w.forceLines[:0]
	return removed
}

// HitTest returns the first body in world order whose bounding box contains p.
func (w *World) HitTest(p r2.Vec) (*Body, bool) {
	for _, b := range w.bodies {
		if b.Contains(p) {
			return b, true
		}
	}
	return nil, false
}

// compact drops dead bodies in one pass, preserving the order of survivors.
func (w *World) compact() []BodyID {
	var removed []BodyID
	live := w.bodies[:0]
	for _, b := range w.bodies {
		if b.Alive {
			live = append(live, b)
			continue
		}
		removed = append(removed, b.ID)
		delete(w.index, b.ID)
	}
	for i := len(live); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = live
	return removed
}
