package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the panel styles for one theme.
type Styles struct {
	Panel       lipgloss.Style
	Title       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	SparkHigh   lipgloss.Style
	SparkMid    lipgloss.Style
	SparkLow    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		KeyHint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Status:      lipgloss.NewStyle().Foreground(t.Success),
		Error:       lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		SparkHigh:   lipgloss.NewStyle().Foreground(t.Success),
		SparkMid:    lipgloss.NewStyle().Foreground(t.Warning),
		SparkLow:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// Metric renders "label value" with the label padded to width.
func (s Styles) Metric(label, value string, width int) string {
	pad := width - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return s.MetricLabel.Render(label) + strings.Repeat(" ", pad) + s.MetricValue.Render(value)
}

// Sparkline renders the last width values as bars scaled to their range.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		c := string(chars[min(int(norm*float64(len(chars)-1)), len(chars)-1)])
		switch {
		case norm > 0.7:
			b.WriteString(s.SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(s.SparkMid.Render(c))
		default:
			b.WriteString(s.SparkLow.Render(c))
		}
	}
	return b.String()
}

// Separator is a muted rule with a centre mark.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.MetricLabel.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.MetricLabel.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
