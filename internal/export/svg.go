package export

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/physics"
)

// WorldToSVG renders one frame of the world at canvas scale: trails, force
// lines, then bodies, over the configured background.
func WorldToSVG(w *physics.World, cfg *config.Config) string {
	if w == nil || cfg == nil {
		return ""
	}

	var sb strings.Builder
	bg := cfg.Background
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#%02x%02x%02x"/>
`, cfg.Width, cfg.Height, cfg.Width, cfg.Height, bg.R, bg.G, bg.B))

	if cfg.DrawPath {
		for _, b := range w.Bodies() {
			pts := b.Trail.Points()
			if len(pts) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, b.PathColor(cfg).Clamped().Hex()))
			for i, p := range pts {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			}
			sb.WriteString("\"/>\n")
		}
	}

	for _, l := range w.ForceLines() {
		color := colorful.Color{}.BlendRgb(colorful.Color{R: 1}, l.Intensity).Hex()
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, l.From.X, l.From.Y, l.To.X, l.To.Y, color))
	}

	for _, b := range w.Bodies() {
		c := b.Center()
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, b.Radius, b.Color.Clamped().Hex()))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values left to right as a single stroked path.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
