package viz

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.Dots(); w != 8 || h != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", w, h)
	}

	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)
	c.Set(8, 0)
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit dots, got %d", c.Lit())
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if !c.IsSet(7, 7) || c.IsSet(6, 7) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected blank cell after Unset, got %U", c.Grid[0][0])
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Errorf("expected empty canvas after Clear, got %d dots", c.Lit())
	}
	if lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n"); len(lines) != 2 {
		t.Errorf("expected 2 rows, got %d", len(lines))
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 0)
	if c.Lit() != 20 {
		t.Errorf("horizontal line: expected 20 dots, got %d", c.Lit())
	}

	c.Clear()
	c.DrawLine(0, 0, 5, 5)
	for i := 0; i <= 5; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal missing dot %d", i)
		}
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	sw, sh := 100, 80

	x, y, _, ok := cam.Project(mgl64.Vec3{}, sw, sh)
	if !ok || x != sw/2 || y != sh/2 {
		t.Fatalf("target should land at screen center, got (%d, %d) visible=%v", x, y, ok)
	}

	if x, _, _, _ := cam.Project(mgl64.Vec3{1, 0, 0}, sw, sh); x <= sw/2 {
		t.Errorf("+x should project right of center, got %d", x)
	}
	if _, y, _, _ := cam.Project(mgl64.Vec3{0, 1, 0}, sw, sh); y >= sh/2 {
		t.Errorf("+y should project above center, got %d", y)
	}
	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 20}, sw, sh); ok {
		t.Error("point behind the camera should be hidden")
	}

	cam.Orbit(0, 10)
	if cam.Pitch > 1.5708 {
		t.Errorf("pitch should clamp at pi/2, got %v", cam.Pitch)
	}
}

func TestCameraFit(t *testing.T) {
	cam := NewCamera()
	cam.Fit([]mgl64.Vec3{{1, 1, 1}, {3, 5, 1}})
	if !cam.Target.ApproxEqual(mgl64.Vec3{2, 3, 1}) {
		t.Errorf("expected target at bounds center, got %v", cam.Target)
	}
	if cam.Zoom <= 0 || cam.Zoom >= 1 {
		t.Errorf("expected zoom below 1 for a large body, got %v", cam.Zoom)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func ropeExperiment(t *testing.T) *experiment.Experiment {
	t.Helper()
	exp := experiment.New(experiment.Rope(), "", quietLogger())
	if err := exp.Setup(nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return exp
}

func TestBodyWireframe(t *testing.T) {
	b := ropeExperiment(t).Scene().Body
	structural := 0
	for _, s := range b.Springs() {
		if s.Kind == dynamo.Structural {
			structural++
		}
	}

	w := NewWireframe()
	BodyWireframe(w, b, false)
	if len(w.Edges) != len(b.Nodes())+structural {
		t.Errorf("expected %d edges, got %d", len(b.Nodes())+structural, len(w.Edges))
	}
	BodyWireframe(w, b, true)
	if len(w.Edges) != len(b.Nodes())+len(b.Springs()) {
		t.Errorf("expected %d edges with bending, got %d", len(b.Nodes())+len(b.Springs()), len(w.Edges))
	}

	c := NewCanvas(40, 12)
	cam := NewCamera()
	cam.Fit(w.Points())
	Render3D(c, w, cam)
	if c.Lit() == 0 {
		t.Error("expected the rope to light some dots")
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelKeys(t *testing.T) {
	exp := ropeExperiment(t)
	b := exp.Scene().Body
	m := NewModel(exp)

	next, _ := m.Update(key(" "))
	m = next.(Model)
	if !b.Paused() {
		t.Fatal("space should pause the body")
	}
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if b.StepCount() != 0 || m.skipped != m.stepsPerFrame {
		t.Errorf("paused tick: expected 0 steps and %d held, got %d and %d", m.stepsPerFrame, b.StepCount(), m.skipped)
	}

	next, _ = m.Update(key(" "))
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if b.StepCount() != m.stepsPerFrame {
		t.Errorf("expected %d steps after resume, got %d", m.stepsPerFrame, b.StepCount())
	}
	if len(m.kinetic) != 2 {
		t.Errorf("expected 2 energy samples, got %d", len(m.kinetic))
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if b.FixedCount() != 0 {
		t.Errorf("release should free the anchor, %d still fixed", b.FixedCount())
	}

	next, _ = m.Update(key("p"))
	m = next.(Model)
	if m.preset != 0 || !strings.HasPrefix(m.message, "preset ") {
		t.Errorf("expected first preset applied, got %d %q", m.preset, m.message)
	}

	if !strings.Contains(m.View(), "ROPE") {
		t.Error("view should name the body")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestStepsPerFrame(t *testing.T) {
	tests := []struct {
		dt   float64
		want int
	}{
		{0.01, 2},
		{1.0 / 60, 1},
		{0.001, 17},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := stepsPerFrame(tt.dt); got != tt.want {
			t.Errorf("stepsPerFrame(%v) = %d, want %d", tt.dt, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := []rune(Sparkline([]float64{0, 1, 2, 3}, 4)); len(got) != 4 || got[0] != '▁' || got[3] != '█' {
		t.Errorf("unexpected sparkline %q", string(got))
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline: got %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("expected to cycle back to %s, got %s", start, CurrentTheme.Name)
	}
}
