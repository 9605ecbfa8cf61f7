package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/softsim/internal/experiment"
)

var sceneInfo = map[string]string{
	"rope":  "chain pinned at one end",
	"flag":  "cloth in oscillating wind",
	"jelly": "volume pressed by a walker",
	"sack":  "volume dropped after release",
}

// picker lists the registered scenes and hands the chosen one to a live
// Model.
type picker struct {
	registry *experiment.Registry
	logger   *slog.Logger
	scenes   []string
	cursor   int
	err      error

	live    Model
	running bool
}

func NewPicker(r *experiment.Registry, logger *slog.Logger) tea.Model {
	return picker{registry: r, logger: logger, scenes: r.ListScenes()}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.running {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (tea.Model, tea.Cmd) {
	name := m.scenes[m.cursor]
	cfg, err := m.registry.GetScene(name)
	if err == nil {
		exp := experiment.New(cfg, ".", m.logger)
		if err = exp.Setup(nil); err == nil {
			m.live, m.running = NewModel(exp), true
			return m, m.live.Init()
		}
	}
	m.err = fmt.Errorf("%s: %w", name, err)
	return m, nil
}

func (m picker) View() string {
	if m.running {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render("SOFTSIM") + "\n    " + hintStyle().Render("mass-spring soft bodies") + "\n    " + separator(25) + "\n\n")
	for i, name := range m.scenes {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", titleStyle().Render("▸"), valueStyle().Bold(true).Render(fmt.Sprintf("%-8s", name)), bodyStyle().Render(sceneInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", labelStyle().Width(8).Render(name), hintStyle().Render(sceneInfo[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + eventStyle().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hintStyle().Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// RunInteractive lets the user pick a scene and watch it live.
func RunInteractive(r *experiment.Registry, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewPicker(r, logger), tea.WithAltScreen()).Run()
	return err
}
