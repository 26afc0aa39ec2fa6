// Package tui runs the simulator scene in a terminal with bubbletea.
package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/photosim/internal/geom"
	"github.com/san-kum/photosim/internal/scene"
	"github.com/san-kum/photosim/internal/viz"
	"github.com/san-kum/photosim/internal/widget"
)

const (
	panelWidth = 46
	maxHistory = 120
)

type tickMsg time.Time

// Model is the bubbletea model wrapping a scene.
type Model struct {
	scene  *scene.Scene
	canvas *viz.Surface
	theme  viz.Theme
	styles viz.Styles

	rate    time.Duration
	pointer geom.Point
	pending []widget.Event
	paused  bool

	speeds  []float64
	current []float64
	notice  string
	err     error

	width, height int

	copyText func(string) error
}

func New(s *scene.Scene) *Model {
	cfg := s.Config()
	m := &Model{
		scene:    s,
		theme:    viz.ThemeLab,
		styles:   viz.NewStyles(viz.ThemeLab),
		rate:     time.Duration(float64(time.Second) / cfg.TickRate),
		width:    120,
		height:   36,
		copyText: clipboard.WriteAll,
	}
	m.canvas = viz.NewSurface(m.canvasSize())
	return m
}

func (m *Model) canvasSize() (cols, rows int, w, h float64) {
	cfg := m.scene.Config()
	return max(m.width-panelWidth-2, 10), max(m.height-1, 5), float64(cfg.Window.Width), float64(cfg.Window.Height)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.rate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows, _, _ := m.canvasSize()
		m.canvas.Resize(cols, rows)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		in := widget.Input{Pointer: m.pointer, Events: m.pending}
		m.pending = nil
		quit, err := m.scene.Step(in)
		m.err = err
		if quit {
			return m, tea.Quit
		}
		m.record()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record() {
	r := m.scene.Readout()
	m.speeds = appendCapped(m.speeds, r.AverageSpeed)
	m.current = appendCapped(m.current, r.Metrics["photocurrent"])
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > maxHistory {
		xs = xs[len(xs)-maxHistory:]
	}
	return xs
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+p":
		m.paused = !m.paused
		return m, nil
	case "ctrl+t":
		m.theme = viz.NextTheme(m.theme.Name)
		m.styles = viz.NewStyles(m.theme)
		return m, nil
	case "ctrl+r":
		m.scene.Session().Reset()
		m.speeds, m.current = nil, nil
		return m, nil
	case "ctrl+y":
		text := strings.Join(m.scene.Readout().Lines(), "\n")
		if err := m.copyText(text); err != nil {
			m.notice = "copy failed: " + err.Error()
		} else {
			m.notice = "readout copied"
		}
		return m, nil
	}
	m.pending = append(m.pending, keyEvents(msg)...)
	return m, nil
}

// keyEvents turns a typed key into widget key events. Terminals report
// characters already shifted, so shifted characters are wrapped in a
// shift press and release around their unshifted key.
func keyEvents(msg tea.KeyMsg) []widget.Event {
	down := func(k widget.Key) widget.Event { return widget.Event{Kind: widget.KeyDown, Key: k} }
	up := func(k widget.Key) widget.Event { return widget.Event{Kind: widget.KeyUp, Key: k} }

	var k widget.Key
	switch msg.Type {
	case tea.KeyBackspace:
		k = widget.Key{Code: widget.KeyBackspace}
	case tea.KeySpace:
		k = widget.Key{Code: widget.KeySpace, Name: " "}
	case tea.KeyEnter:
		k = widget.Key{Code: widget.KeyEnter}
	case tea.KeyEsc:
		k = widget.Key{Code: widget.KeyEscape}
	case tea.KeyTab:
		k = widget.Key{Code: widget.KeyTab}
	case tea.KeyRunes:
		var evs []widget.Event
		shift := widget.Key{Code: widget.KeyShift}
		for _, r := range msg.Runes {
			if r == ' ' {
				sp := widget.Key{Code: widget.KeySpace, Name: " "}
				evs = append(evs, down(sp), up(sp))
				continue
			}
			base, shifted := widget.Unshifted(string(r))
			key := widget.Key{Code: widget.KeyChar, Name: base}
			if shifted {
				evs = append(evs, down(shift), down(key), up(key), up(shift))
			} else {
				evs = append(evs, down(key), up(key))
			}
		}
		return evs
	default:
		return nil
	}
	return []widget.Event{down(k), up(k)}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	cols, rows, _, _ := m.canvasSize()
	if msg.X < 0 || msg.Y < 0 || msg.X >= cols || msg.Y >= rows {
		if msg.Action == tea.MouseActionRelease {
			m.pending = append(m.pending, widget.Event{Kind: widget.MouseUp, X: m.pointer.X, Y: m.pointer.Y})
		}
		return
	}
	m.pointer = m.canvas.Cell(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pending = append(m.pending, widget.Event{Kind: widget.MouseDown, X: m.pointer.X, Y: m.pointer.Y})
	case msg.Action == tea.MouseActionRelease:
		m.pending = append(m.pending, widget.Event{Kind: widget.MouseUp, X: m.pointer.X, Y: m.pointer.Y})
	}
}

func (m *Model) View() string {
	m.scene.Draw(m.canvas)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), " ", m.panel())
}

func (m *Model) panel() string {
	st := m.styles
	inner := panelWidth - 4
	var b strings.Builder

	b.WriteString(st.Title.Render("photosim") + "  ")
	if m.paused {
		b.WriteString(st.Error.Render("paused"))
	} else {
		b.WriteString(st.Status.Render("running"))
	}
	b.WriteString("\n" + st.Separator(inner) + "\n")

	for _, line := range m.scene.Readout().Lines() {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			b.WriteString(st.MetricLabel.Render(line) + "\n")
			continue
		}
		b.WriteString(st.Metric(label+":", strings.TrimSpace(value), 16) + "\n")
	}

	b.WriteString(st.Separator(inner) + "\n")
	b.WriteString(st.MetricLabel.Render("average speed (m/s)") + "\n")
	b.WriteString(plot(m.speeds, inner-8) + "\n")
	b.WriteString(st.MetricLabel.Render("collected (e/s) ") + st.Sparkline(m.current, inner-16) + "\n")

	b.WriteString(st.Separator(inner) + "\n")
	if m.err != nil {
		b.WriteString(st.Error.Render(m.err.Error()) + "\n")
	} else if s := m.scene.Status(); s != "" {
		b.WriteString(st.Status.Render(s) + "\n")
	}
	if m.notice != "" {
		b.WriteString(st.Status.Render(m.notice) + "\n")
	}
	b.WriteString(st.KeyHint.Render("click/type: widgets  ^p pause  ^r reset") + "\n")
	b.WriteString(st.KeyHint.Render("^t theme  ^y copy  ^c quit"))

	return st.Panel.Width(panelWidth - 2).Render(b.String())
}

func plot(data []float64, width int) string {
	if len(data) < 2 {
		return strings.Repeat("\n", 5)
	}
	return asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(max(width, 10)), asciigraph.Precision(0))
}

// Run blocks until the user quits.
func Run(s *scene.Scene) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
