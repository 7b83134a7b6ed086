package control

import (
	"math/rand"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Mode int

const (
	Create Mode = iota
	Grab
)

func (m Mode) String() string {
	if m == Grab {
		return "grab"
	}
	return "create"
}

// View is a read-only snapshot of the controller for renderers.
type View struct {
	Mode         Mode
	Kind         physics.Kind
	Selected     physics.BodyID
	LastSelected physics.BodyID
}

func (v View) HasLastSelected() bool { return v.LastSelected != 0 }

type Controller struct {
	cfg     *config.Config
	world   *physics.World
	buttons Buttons
	rng     *rand.Rand

	mode Mode
	kind physics.Kind

	selected     physics.BodyID
	lastSelected physics.BodyID
	priorStatic  bool
}

// New starts in Create mode with stars selected, as the sandbox opens.
func New(cfg *config.Config, world *physics.World, buttons Buttons, rng *rand.Rand) *Controller {
	return &Controller{
		cfg:     cfg,
		world:   world,
		buttons: buttons,
		rng:     rng,
		mode:    Create,
		kind:    physics.Star,
	}
}

func (c *Controller) Mode() Mode         { return c.mode }
func (c *Controller) Kind() physics.Kind { return c.kind }

func (c *Controller) View() View {
	return View{Mode: c.mode, Kind: c.kind, Selected: c.selected, LastSelected: c.lastSelected}
}

func (c *Controller) Selected() (*physics.Body, bool)     { return c.resolve(c.selected) }
func (c *Controller) LastSelected() (*physics.Body, bool) { return c.resolve(c.lastSelected) }

func (c *Controller) resolve(id physics.BodyID) (*physics.Body, bool) {
	if id == 0 {
		return nil, false
	}
	return c.world.Get(id)
}

func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case PointerDown:
		c.PointerDown(ev.Pos)
	case PointerMove:
		c.PointerMove(ev.Pos)
	case PointerUp:
		c.PointerUp(ev.Pos)
	}
}

// PointerDown performs exactly one action; buttons take priority over the
// canvas in a fixed order.
func (c *Controller) PointerDown(p r2.Vec) {
	hit := func(b Button) bool { return c.buttons != nil && c.buttons.Hit(b, p) }

	switch {
	case hit(ButtonForce):
		c.cfg.DrawForceLines = !c.cfg.DrawForceLines

	case hit(ButtonMode):
		if c.mode == Create {
			c.mode = Grab
		} else {
			c.mode = Create
		}
		c.abandonGrab()

	case hit(ButtonKind) && c.mode == Create:
		if c.kind == physics.Star {
			c.kind = physics.Planet
		} else {
			c.kind = physics.Star
		}

	case hit(ButtonPath):
		c.cfg.DrawPath = !c.cfg.DrawPath

	case hit(ButtonClear):
		c.world.Clear()
		c.selected, c.lastSelected = 0, 0

	case hit(ButtonVelocity) && c.mode == Create && c.kind == physics.Planet:
		c.cfg.PlanetVelocity = !c.cfg.PlanetVelocity

	case hit(ButtonStatic):
		if b, ok := c.LastSelected(); ok {
			b.Static = !b.Static
		}

	case hit(ButtonKill):
		c.cfg.Kill = !c.cfg.Kill

	case hit(ButtonDelete) && c.cfg.Kill:
		// removal is deferred to the next Step
		if b, ok := c.LastSelected(); ok {
			b.Alive = false
			c.lastSelected = 0
		}

	case c.mode == Create:
		c.spawn(p)

	case c.selected == 0:
		c.pick(p)
	}
}

func (c *Controller) spawn(p r2.Vec) {
	if c.kind == physics.Star {
		star := physics.NewStar(c.cfg, c.rng, p)
		star.Static = true
		c.world.Prepend(star)
		return
	}
	c.world.Append(physics.NewPlanet(c.cfg, c.rng, p))
}

func (c *Controller) pick(p r2.Vec) {
	b, ok := c.world.HitTest(p)
	if !ok {
		return
	}
	c.selected = b.ID
	c.priorStatic = b.Static
	b.Static = true
}

func (c *Controller) abandonGrab() {
	if b, ok := c.Selected(); ok {
		b.Static = c.priorStatic
	}
	c.selected = 0
}

// PointerMove drags the selected body so its center follows the pointer.
func (c *Controller) PointerMove(p r2.Vec) {
	if c.mode != Grab {
		return
	}
	if b, ok := c.Selected(); ok {
		b.SetCenter(p)
	}
}

// PointerUp releases the grab, restoring the static flag the body had before
// it was picked up.
func (c *Controller) PointerUp(r2.Vec) {
	b, ok := c.Selected()
	if !ok {
		return
	}
	b.Static = c.priorStatic
	c.lastSelected = c.selected
	c.selected = 0
}

// Forget drops handles to bodies the world has removed.
func (c *Controller) Forget(removed []physics.BodyID) {
	for _, id := range removed {
		if c.selected == id {
			c.selected = 0
		}
		if c.lastSelected == id {
			c.lastSelected = 0
		}
	}
}
