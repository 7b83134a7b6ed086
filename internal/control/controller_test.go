package control_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// stripButtons lays the buttons out as 10x10 squares along y=1000.
type stripButtons struct{}

func (stripButtons) Hit(b control.Button, p r2.Vec) bool {
	x := 1000 + float64(b)*10
	return p.X >= x && p.X < x+10 && p.Y >= 1000 && p.Y < 1010
}

func buttonAt(b control.Button) r2.Vec {
	return r2.Vec{X: 1005 + float64(b)*10, Y: 1005}
}

var _ = Describe("Controller", func() {
	var (
		cfg   *config.Config
		world *physics.World
		ctrl  *control.Controller
	)

	press := func(b control.Button) { ctrl.PointerDown(buttonAt(b)) }

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		world = physics.NewWorld()
		ctrl = control.New(cfg, world, stripButtons{}, rand.New(rand.NewSource(1)))
	})

	It("starts in create mode with stars", func() {
		Expect(ctrl.Mode()).To(Equal(control.Create))
		Expect(ctrl.Kind()).To(Equal(physics.Star))
		Expect(ctrl.View().HasLastSelected()).To(BeFalse())
	})

	Describe("toggles", func() {
		It("flips the runtime config flags", func() {
			press(control.ButtonForce)
			press(control.ButtonPath)
			press(control.ButtonKill)

			Expect(cfg.DrawForceLines).To(BeTrue())
			Expect(cfg.DrawPath).To(BeTrue())
			Expect(cfg.Kill).To(BeFalse())
			Expect(world.Len()).To(Equal(0))
		})

		It("only switches kind in create mode", func() {
			press(control.ButtonKind)
			Expect(ctrl.Kind()).To(Equal(physics.Planet))

			press(control.ButtonMode)
			press(control.ButtonKind)
			Expect(ctrl.Kind()).To(Equal(physics.Planet))
			Expect(world.Len()).To(Equal(0))
		})

		It("only switches planet velocity in planet mode", func() {
			press(control.ButtonVelocity)
			Expect(cfg.PlanetVelocity).To(BeTrue())

			press(control.ButtonKind)
			press(control.ButtonVelocity)
			Expect(cfg.PlanetVelocity).To(BeFalse())
		})
	})

	Describe("create mode", func() {
		It("puts static stars at the front", func() {
			press(control.ButtonKind)
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			press(control.ButtonKind)
			ctrl.PointerDown(r2.Vec{X: 250, Y: 250})

			Expect(world.Len()).To(Equal(2))
			star := world.At(0)
			Expect(star.Kind).To(Equal(physics.Star))
			Expect(star.Static).To(BeTrue())
			Expect(star.Center().X).To(BeNumerically("~", 250, 1e-9))
			Expect(star.Center().Y).To(BeNumerically("~", 250, 1e-9))
			Expect(world.At(1).Kind).To(Equal(physics.Planet))
		})

		It("launches planets when planet velocity is on", func() {
			press(control.ButtonKind)
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			press(control.ButtonVelocity)
			ctrl.PointerDown(r2.Vec{X: 200, Y: 100})

			Expect(world.At(0).Velocity).To(Equal(r2.Vec{Y: -cfg.PlanetStartingVelocity}))
			Expect(world.At(0).Static).To(BeFalse())
			Expect(world.At(1).Velocity).To(Equal(r2.Vec{}))
		})

		It("ignores pointer motion", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			before := world.At(0).Position
			ctrl.PointerMove(r2.Vec{X: 300, Y: 300})
			Expect(world.At(0).Position).To(Equal(before))
		})
	})

	Describe("grab mode", func() {
		var planet, star *physics.Body

		BeforeEach(func() {
			ctrl.PointerDown(r2.Vec{X: 400, Y: 400})
			press(control.ButtonKind)
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			star, planet = world.At(0), world.At(1)
			press(control.ButtonMode)
			Expect(ctrl.Mode()).To(Equal(control.Grab))
		})

		It("restores a planet to non-static after a drag", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			sel, ok := ctrl.Selected()
			Expect(ok).To(BeTrue())
			Expect(sel).To(BeIdenticalTo(planet))
			Expect(planet.Static).To(BeTrue())

			ctrl.PointerMove(r2.Vec{X: 150, Y: 180})
			Expect(planet.Center().X).To(BeNumerically("~", 150, 1e-9))
			Expect(planet.Center().Y).To(BeNumerically("~", 180, 1e-9))
			Expect(planet.Static).To(BeTrue())

			ctrl.PointerUp(r2.Vec{X: 150, Y: 180})
			Expect(planet.Static).To(BeFalse())
			_, ok = ctrl.Selected()
			Expect(ok).To(BeFalse())
			last, ok := ctrl.LastSelected()
			Expect(ok).To(BeTrue())
			Expect(last).To(BeIdenticalTo(planet))
		})

		It("keeps a star static after a drag", func() {
			ctrl.PointerDown(r2.Vec{X: 400, Y: 400})
			ctrl.PointerMove(r2.Vec{X: 420, Y: 400})
			ctrl.PointerUp(r2.Vec{X: 420, Y: 400})
			Expect(star.Static).To(BeTrue())
		})

		It("selects the first body in world order", func() {
			press(control.ButtonMode)
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			press(control.ButtonMode)

			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			sel, _ := ctrl.Selected()
			Expect(sel).To(BeIdenticalTo(planet))
		})

		It("ignores presses while something is selected", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			ctrl.PointerDown(r2.Vec{X: 400, Y: 400})
			sel, _ := ctrl.Selected()
			Expect(sel).To(BeIdenticalTo(planet))
		})

		It("abandons the grab when the mode changes", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			press(control.ButtonMode)

			Expect(ctrl.Mode()).To(Equal(control.Create))
			Expect(planet.Static).To(BeFalse())
			_, ok := ctrl.Selected()
			Expect(ok).To(BeFalse())
			Expect(ctrl.View().HasLastSelected()).To(BeFalse())
		})

		It("toggles static on the last released body", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			ctrl.PointerUp(r2.Vec{X: 100, Y: 100})

			press(control.ButtonStatic)
			Expect(planet.Static).To(BeTrue())
			press(control.ButtonStatic)
			Expect(planet.Static).To(BeFalse())
		})

		It("deletes the last released body on the next step", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			ctrl.PointerUp(r2.Vec{X: 100, Y: 100})

			press(control.ButtonDelete)
			Expect(planet.Alive).To(BeFalse())
			Expect(ctrl.View().HasLastSelected()).To(BeFalse())
			Expect(world.Len()).To(Equal(2))

			res := world.Step(cfg, 0.01)
			ctrl.Forget(res.Removed)
			Expect(world.Len()).To(Equal(1))
			Expect(world.At(0)).To(BeIdenticalTo(star))
		})

		It("refuses to delete while kill is off", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			ctrl.PointerUp(r2.Vec{X: 100, Y: 100})
			press(control.ButtonKill)

			press(control.ButtonDelete)
			Expect(planet.Alive).To(BeTrue())
			Expect(ctrl.View().HasLastSelected()).To(BeTrue())
		})

		It("clears the world and every handle", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			press(control.ButtonClear)

			Expect(world.Len()).To(Equal(0))
			Expect(ctrl.View()).To(Equal(control.View{Mode: control.Grab, Kind: physics.Planet}))
		})

		It("forgets a dragged body that leaves the kill box", func() {
			ctrl.PointerDown(r2.Vec{X: 100, Y: 100})
			ctrl.PointerMove(r2.Vec{X: cfg.KillDistance * 2, Y: 0})

			res := world.Step(cfg, 0.01)
			Expect(res.Removed).To(ConsistOf(planet.ID))
			ctrl.Forget(res.Removed)

			_, ok := ctrl.Selected()
			Expect(ok).To(BeFalse())
			Expect(ctrl.View().Selected).To(BeZero())
		})
	})

	Describe("Handle", func() {
		It("dispatches on event kind", func() {
			ctrl.Handle(control.Down(100, 100))
			ctrl.Handle(control.Down(1000+float64(control.ButtonMode)*10+5, 1005))
			ctrl.Handle(control.Down(100, 100))
			ctrl.Handle(control.Move(120, 100))
			ctrl.Handle(control.Up(120, 100))

			Expect(world.At(0).Center().X).To(BeNumerically("~", 120, 1e-9))
			Expect(world.At(0).Static).To(BeTrue())
			Expect(ctrl.View().HasLastSelected()).To(BeTrue())
		})
	})
})

var _ = DescribeTable("ParseEventKind",
	func(s string, want control.EventKind, ok bool) {
		got, err := control.ParseEventKind(s)
		if !ok {
			Expect(err).To(HaveOccurred())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(got.String()).To(Equal(s))
	},
	Entry("down", "down", control.PointerDown, true),
	Entry("move", "move", control.PointerMove, true),
	Entry("up", "up", control.PointerUp, true),
	Entry("unknown", "click", control.PointerDown, false),
)

var _ = Describe("ParseButton", func() {
	It("round trips every button name", func() {
		for b := control.ButtonMode; b < control.NumButtons; b++ {
			got, err := control.ParseButton(b.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(b))
		}
	})

	It("rejects unknown names", func() {
		_, err := control.ParseButton("launch")
		Expect(err).To(MatchError(ContainSubstring("launch")))
	})
})
