package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ColText    = rl.NewColor(220, 220, 220, 255)
	ColTextDim = rl.NewColor(120, 120, 120, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

func (a *App) Draw() {
	cfg := a.Sim.Config()

	rl.BeginDrawing()
	rl.ClearBackground(fromRGB(cfg.Background))

	a.drawTrails(cfg)
	a.drawForceLines()
	a.drawBodies()
	a.drawButtons()
	if a.ShowHUD {
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawTrails(cfg *config.Config) {
	if !cfg.DrawPath {
		return
	}
	for _, b := range a.Sim.World().Bodies() {
		points := trailPoints(b.Trail)
		if len(points) < 2 {
			continue
		}
		rl.DrawLineStrip(points, toRL(b.PathColor(cfg)))
	}
}

func (a *App) drawForceLines() {
	for _, l := range a.Sim.World().ForceLines() {
		rl.DrawLineV(vec(l.From), vec(l.To), forceLineColor(l.Intensity))
	}
}

func (a *App) drawBodies() {
	view := a.Sim.Controller().View()
	for _, b := range a.Sim.World().Bodies() {
		c := b.Center()
		rl.DrawCircleV(vec(c), float32(b.Radius), toRL(b.Color))
		if b.ID == view.Selected || b.ID == view.LastSelected {
			rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(b.Radius)+2, ColSelect)
		}
	}
}

func (a *App) drawButtons() {
	cfg := a.Sim.Config()
	size := int32(a.Layout.FontSize)
	for _, label := range a.Layout.Labels(a.Sim.Controller().View(), cfg) {
		r := label.Rect
		rl.DrawRectangleLinesEx(rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H)), float32(a.Layout.Border), ColText)

		tw := rl.MeasureText(label.Text, size)
		x := int32(r.X) + (int32(r.W)-tw)/2
		y := int32(r.Y) + (int32(r.H)-size)/2
		rl.DrawText(label.Text, x, y, size, ColText)
	}
}

func (a *App) drawHUD() {
	size := int32(a.Layout.FontSize)
	rl.DrawText(a.status(), 8, 8, size, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 8, 8+size+4, size, ColTextDim)
	a.drawTelemetry(8, 8+2*(size+4), 160, 30)
}

func (a *App) drawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + float32(i)/float32(maxTelemetry)*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColTextDim)
	rl.DrawText(fmt.Sprintf("KE %.2e", a.Telemetry[len(a.Telemetry)-1]), x+width+6, y+height-10, 10, ColTextDim)
}

func vec(v r2.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func fromRGB(c config.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

// forceLineColor fades from black at zero intensity to full red.
func forceLineColor(intensity float64) rl.Color {
	return toRL(colorful.Color{}.BlendRgb(colorful.Color{R: 1}, intensity))
}

func trailPoints(t *physics.Trail) []rl.Vector2 {
	if t == nil {
		return nil
	}
	src := t.Points()
	points := make([]rl.Vector2, len(src))
	for i, p := range src {
		points[i] = vec(p)
	}
	return points
}
