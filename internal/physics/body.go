package physics

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravbox/internal/config"
	"gonum.org/v1/gonum/spatial/r2"
)

// BodyID is a stable handle into a World. The zero value never names a body.
type BodyID uint64

type Kind int

const (
	Star Kind = iota
	Planet
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	}
	return "unknown"
}

type Body struct {
	ID   BodyID
	Kind Kind

	// Position is the top-left corner of the bounding box, not the center.
	Position r2.Vec
	Velocity r2.Vec
	Size     float64
	Radius   float64
	Mass     float64

	Alive  bool
	Static bool

	Color colorful.Color
	Trail *Trail

	sampleTimer float64
	sampleClock float64
}

// NewBody builds a live body of the given size centered on placement.
func NewBody(kind Kind, size, density float64, placement r2.Vec, color colorful.Color, trailSize int) *Body {
	b := &Body{
		Kind:   kind,
		Size:   size,
		Radius: size / 2,
		Mass:   Mass(size, density),
		Alive:  true,
		Color:  color,
		Trail:  NewTrail(trailSize),
	}
	b.SetCenter(placement)
	return b
}

// Mass is the rounded disc area scaled by the density factor.
func Mass(size, density float64) float64 {
	return math.Round(math.Pi*size*size) * density
}

// NewStar samples a static, dense star. rng must not be nil.
func NewStar(cfg *config.Config, rng *rand.Rand, placement r2.Vec) *Body {
	size := sampleSize(rng, cfg.StarSize)
	color := colorful.Color{
		R: float64(180+rng.Intn(76)) / 255,
		G: float64(rng.Intn(101)) / 255,
		B: float64(rng.Intn(101)) / 255,
	}
	b := NewBody(Star, size, cfg.StarDensity, placement, color, cfg.PathSampleSize)
	b.Static = true
	return b
}

// NewPlanet samples a planet, launched upwards when PlanetVelocity is on.
func NewPlanet(cfg *config.Config, rng *rand.Rand, placement r2.Vec) *Body {
	size := sampleSize(rng, cfg.PlanetSize)
	color := colorful.Color{
		R: float64(rng.Intn(256)) / 255,
		G: float64(50+rng.Intn(206)) / 255,
		B: float64(50+rng.Intn(206)) / 255,
	}
	b := NewBody(Planet, size, cfg.PlanetDensity, placement, color, cfg.PathSampleSize)
	if cfg.PlanetVelocity {
		b.Velocity = r2.Vec{X: 0, Y: -cfg.PlanetStartingVelocity}
	}
	return b
}

func sampleSize(rng *rand.Rand, r config.SizeRange) float64 {
	return float64(r.Min + rng.Intn(r.Max-r.Min+1))
}

func (b *Body) Center() r2.Vec {
	half := b.Size / 2
	return r2.Add(b.Position, r2.Vec{X: half, Y: half})
}

func (b *Body) SetCenter(c r2.Vec) {
	half := b.Size / 2
	b.Position = r2.Sub(c, r2.Vec{X: half, Y: half})
}

// Contains reports whether p lies in the half-open bounding box
// [x, x+size) x [y, y+size).
func (b *Body) Contains(p r2.Vec) bool {
	return p.X >= b.Position.X && p.X < b.Position.X+b.Size &&
		p.Y >= b.Position.Y && p.Y < b.Position.Y+b.Size
}

// PathColor is the colour the renderer should use for this body's trail.
func (b *Body) PathColor(cfg *config.Config) colorful.Color {
	if cfg.PathColorFromBody {
		return b.Color
	}
	c := cfg.PathColor
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
