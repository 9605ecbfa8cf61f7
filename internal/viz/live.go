package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
	"github.com/san-kum/softsim/internal/metrics"
)

const (
	width           = 72
	height          = 22
	frameRate       = 60
	historyCapacity = 300
	maxEvents       = 4
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live view of one experiment.
type Model struct {
	exp    *experiment.Experiment
	body   *dynamo.Body
	canvas *Canvas
	camera *Camera
	wire   *Wireframe

	presets []string
	preset  int

	stepsPerFrame int
	skipped       int
	bending       bool
	showHelp      bool
	message       string

	kinetic []float64
	stretch []float64
}

// NewModel wraps an experiment that has been set up.
func NewModel(exp *experiment.Experiment) Model {
	b := exp.Scene().Body
	m := Model{
		exp:           exp,
		body:          b,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		wire:          NewWireframe(),
		presets:       config.ListPresets(exp.Config().Kind),
		preset:        -1,
		stepsPerFrame: stepsPerFrame(b.Params().Dt),
		kinetic:       make([]float64, 0, historyCapacity),
		stretch:       make([]float64, 0, historyCapacity),
	}
	BodyWireframe(m.wire, b, m.bending)
	m.camera.Fit(m.wire.Points())
	m.draw()
	return m
}

// stepsPerFrame keeps simulated time close to wall time.
func stepsPerFrame(dt float64) int {
	if dt <= 0 {
		return 1
	}
	return max(1, int(math.Round(1/(frameRate*dt))))
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.advance()
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.body.Paused() {
			m.body.Resume()
		} else {
			m.body.Pause()
		}
	case "r":
		m.release()
	case "p":
		m.cyclePreset()
	case "b":
		m.bending = !m.bending
	case "f":
		m.camera.Fit(m.wire.Points())
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	case "left", "h":
		m.camera.Orbit(-0.1, 0)
	case "right", "l":
		m.camera.Orbit(0.1, 0)
	case "up", "k":
		m.camera.Orbit(0, 0.1)
	case "down", "j":
		m.camera.Orbit(0, -0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	m.draw()
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		if !m.exp.Advance() {
			m.skipped++
		}
	}
	m.kinetic = pushCapped(m.kinetic, metrics.Kinetic(m.body))
	m.stretch = pushCapped(m.stretch, metrics.Stretch(m.body))
}

func pushCapped(hist []float64, v float64) []float64 {
	if len(hist) >= historyCapacity {
		hist = append(hist[:0], hist[1:]...)
	}
	return append(hist, v)
}

// release fires the scene trigger, or frees the anchors directly when the
// scene has none.
func (m *Model) release() {
	if r := m.exp.Scene().Release; r != nil {
		if r.Fire() {
			m.message = "anchors released"
		}
		return
	}
	if m.body.FixedCount() > 0 {
		m.body.ReleaseAnchors()
		m.message = "anchors released"
	}
}

func (m *Model) cyclePreset() {
	if len(m.presets) == 0 {
		m.message = "no presets"
		return
	}
	m.preset = (m.preset + 1) % len(m.presets)
	name := m.presets[m.preset]
	p, _ := config.GetPreset(m.exp.Config().Kind, name)
	if err := m.body.ResetParams(p); err != nil {
		m.message = fmt.Sprintf("%s: %v", name, err)
		return
	}
	m.stepsPerFrame = stepsPerFrame(p.Dt)
	m.message = "preset " + name
}

func (m *Model) draw() {
	m.canvas.Clear()
	BodyWireframe(m.wire, m.body, m.bending)
	Render3D(m.canvas, m.wire, m.camera)
}

func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	canvas := lipgloss.NewStyle().Padding(1, 2).Render(bodyStyle().Render(m.canvas.String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, panelStyle.Render(m.statsView()))
}

func (m Model) statsView() string {
	b := m.body
	p := b.Params()
	var sb strings.Builder

	status := "RUNNING"
	if b.Paused() {
		status = "PAUSED"
	}
	sb.WriteString(titleStyle().Render(strings.ToUpper(b.Name())) + "  " + statusStyle(b.Paused()).Render(status) + "\n")
	sb.WriteString(separator(32) + "\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2fs", float64(b.StepCount())*p.Dt))
	row("steps", fmt.Sprintf("%d (%d held)", b.StepCount(), m.skipped))
	row("scheme", string(p.Scheme))
	row("nodes", fmt.Sprintf("%d (%d fixed)", len(b.Nodes()), b.FixedCount()))
	row("springs", fmt.Sprintf("%d", len(b.Springs())))
	row("k", fmt.Sprintf("%.0f / %.0f", p.Stiffness, p.BendStiffness))
	row("wind", fmt.Sprintf("%.2f %.2f %.2f", b.WindDirection().X(), b.WindDirection().Y(), b.WindDirection().Z()))
	if w := m.exp.Scene().Wind; w != nil {
		row("flip in", fmt.Sprintf("%.1fs", math.Max(w.Remaining(), 0)))
	}
	if m.preset >= 0 {
		row("preset", m.presets[m.preset])
	}

	if len(m.kinetic) > 1 {
		sb.WriteString("\n" + asciigraph.Plot(m.kinetic,
			asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("kinetic energy")) + "\n")
	}
	if len(m.stretch) > 0 {
		sb.WriteString("\n" + labelStyle().Render("stretch") + bodyStyle().Render(Sparkline(m.stretch, 22)) + "\n")
	}

	events := m.exp.Events()
	if len(events) > 0 || m.message != "" {
		sb.WriteString("\n")
	}
	for _, e := range events[max(0, len(events)-maxEvents):] {
		sb.WriteString(eventStyle().Render(fmt.Sprintf("%6.2fs %s", e.Time, e.Type)) + "\n")
	}
	if m.message != "" {
		sb.WriteString(hintStyle().Render(m.message) + "\n")
	}
	sb.WriteString("\n" + hintStyle().Render("space pause  r release  p preset  ? help  q quit"))
	return sb.String()
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"space", "pause or resume the body"},
		{"r", "release anchored nodes"},
		{"p", "cycle parameter presets"},
		{"b", "toggle bending springs"},
		{"h/l j/k", "orbit the camera"},
		{"+/-", "zoom"},
		{"f", "fit the camera to the body"},
		{"t", "cycle color themes"},
		{"?", "close help"},
		{"q", "quit"},
	}
	var sb strings.Builder
	sb.WriteString("\n  " + titleStyle().Render("KEYS") + "\n\n")
	for _, k := range keys {
		sb.WriteString("  " + labelStyle().Render(k[0]) + valueStyle().Render(k[1]) + "\n")
	}
	return sb.String()
}

// Run opens the live view for exp until the user quits.
func Run(exp *experiment.Experiment) error {
	_, err := tea.NewProgram(NewModel(exp), tea.WithAltScreen()).Run()
	return err
}
