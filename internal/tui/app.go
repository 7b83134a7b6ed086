package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravbox/internal/control"
	"github.com/san-kum/gravbox/internal/layout"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	statusRows  = 2
	maxFPS      = 60
	historySize = 60
	buttonColor = "#dddddd"
)

type model struct {
	sim    *sim.Simulator
	layout *layout.Layout

	interval time.Duration
	paused   bool
	pending  []control.Event
	history  []float64

	width  int
	height int
}

func New(s *sim.Simulator, l *layout.Layout) model {
	fps := min(s.Config().FPS, maxFPS)
	return model{
		sim:      s,
		layout:   l,
		interval: time.Second / time.Duration(fps),
		history:  make([]float64, 0, historySize),
		width:    80,
		height:   24,
	}
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick(m.interval) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		if ev, ok := m.pointer(msg); ok {
			m.pending = append(m.pending, ev)
		}
		return m, nil
	case tickMsg:
		m.step()
		return m, tick(m.interval)
	}
	return m, nil
}

func (m *model) step() {
	events := m.pending
	m.pending = nil

	if m.paused {
		for _, ev := range events {
			m.sim.Controller().Handle(ev)
		}
		return
	}

	m.sim.Tick(events, m.interval.Seconds())
	if len(m.history) == historySize {
		m.history = m.history[1:]
	}
	m.history = append(m.history, metrics.Kinetic(m.sim.World()))
}

func (m model) canvasRows() int { return max(m.height-statusRows, 1) }

func (m model) projection() projection {
	cfg := m.sim.Config()
	return newProjection(m.width, m.canvasRows(), cfg.Width, cfg.Height)
}

// pointer maps a terminal mouse event onto the canvas. Presses below the
// canvas are dropped so they cannot spawn invisible bodies.
func (m model) pointer(msg tea.MouseMsg) (control.Event, bool) {
	var kind control.EventKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= m.canvasRows() {
			return control.Event{}, false
		}
		kind = control.PointerDown
	case tea.MouseActionMotion:
		kind = control.PointerMove
	case tea.MouseActionRelease:
		kind = control.PointerUp
	default:
		return control.Event{}, false
	}
	return control.Event{Kind: kind, Pos: m.projection().toWorld(msg.X, msg.Y)}, true
}

func (m model) View() string {
	c := NewCanvas(m.width, m.canvasRows())
	m.draw(c, m.projection())

	var b strings.Builder
	b.WriteString(c.String())
	b.WriteString(m.status() + "\n")
	b.WriteString(dim.Render(" space pause  q quit"))
	return b.String()
}

func (m model) draw(c *Canvas, p projection) {
	cfg := m.sim.Config()
	world := m.sim.World()

	if cfg.DrawPath {
		for _, b := range world.Bodies() {
			pts := b.Trail.Points()
			color := b.PathColor(cfg).Clamped().Hex()
			for i := 1; i < len(pts); i++ {
				x0, y0 := p.toPixel(pts[i-1])
				x1, y1 := p.toPixel(pts[i])
				c.DrawLine(x0, y0, x1, y1, color)
			}
		}
	}

	for _, l := range world.ForceLines() {
		x0, y0 := p.toPixel(l.From)
		x1, y1 := p.toPixel(l.To)
		c.DrawLine(x0, y0, x1, y1, colorful.Color{}.BlendRgb(colorful.Color{R: 1}, l.Intensity).Hex())
	}

	for _, b := range world.Bodies() {
		x, y := p.toPixel(b.Center())
		c.FillCircle(x, y, int(b.Radius*p.scale), b.Color.Clamped().Hex())
	}

	for _, label := range m.layout.Labels(m.sim.Controller().View(), cfg) {
		r := label.Rect
		x0, y0 := p.toPixel(r2.Vec{X: r.X, Y: r.Y})
		x1, y1 := p.toPixel(r2.Vec{X: r.X + r.W, Y: r.Y + r.H})
		c.DrawRect(x0, y0, x1, y1, buttonColor)

		text := label.Text
		if cells := (x1-x0)/2 - 1; len(text) > cells {
			text = text[:max(cells, 0)]
		}
		_, cy := p.toPixel(r.Center())
		c.Text(x0/2+1, cy/4, text, buttonColor)
	}
}

func (m model) status() string {
	cfg := m.sim.Config()
	v := m.sim.Controller().View()

	parts := []string{
		cyan.Render(v.Mode.String()) + " " + white.Render(v.Kind.String()),
		dim.Render("bodies ") + white.Render(fmt.Sprint(m.sim.World().Len())),
		toggle("path", cfg.DrawPath),
		toggle("force", cfg.DrawForceLines),
		toggle("kill", cfg.Kill),
	}
	if m.paused {
		parts = append(parts, yellow.Render("PAUSED"))
	}
	if len(m.history) > 1 {
		parts = append(parts, dim.Render("KE ")+cyan.Render(sparkline(m.history, 20)))
	}
	return " " + strings.Join(parts, dim.Render("  │  "))
}

func toggle(name string, on bool) string {
	if on {
		return white.Render(name)
	}
	return dim.Render(name)
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[max(0, min(idx, 7))])
	}
	return sb.String()
}

// projection scales world coordinates onto braille sub-pixels, keeping the
// aspect ratio of the world.
type projection struct {
	scale float64
}

func newProjection(cols, rows, worldW, worldH int) projection {
	sx := float64(cols*2) / float64(worldW)
	sy := float64(rows*4) / float64(worldH)
	return projection{scale: min(sx, sy)}
}

func (p projection) toPixel(v r2.Vec) (int, int) {
	return int(v.X * p.scale), int(v.Y * p.scale)
}

// toWorld returns the world point under the centre of a terminal cell.
func (p projection) toWorld(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col*2) + 1) / p.scale,
		Y: (float64(row*4) + 2) / p.scale,
	}
}

func Run(s *sim.Simulator, l *layout.Layout) error {
	p := tea.NewProgram(New(s, l), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
