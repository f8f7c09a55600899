package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles is the overlay panel's style set for one theme.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	alert  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	panel  lipgloss.Style
	canvas lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label: lipgloss.NewStyle().Foreground(t.Label).Width(11),
		value: lipgloss.NewStyle().Foreground(t.Value).Bold(true),
		alert: lipgloss.NewStyle().Foreground(t.Alert).Bold(true),
		graph: lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(38),
		canvas: lipgloss.NewStyle().Padding(0, 1),
	}
}

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values as block characters scaled to
// their own min and max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[max(0, min(idx, len(sparkRunes)-1))])
	}
	return b.String()
}

// Meter is a filled bar for ratio in [0, 1]. Its color moves from empty to
// full with the ratio.
func Meter(ratio float64, width int, empty, full lipgloss.Color) string {
	ratio = max(0, min(ratio, 1))
	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(GradientAt(empty, full, ratio)).Render(bar)
}

// GradientAt blends two hex colors in HCL space.
func GradientAt(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, errA := colorful.Hex(string(from))
	b, errB := colorful.Hex(string(to))
	if errA != nil || errB != nil {
		return to
	}
	return lipgloss.Color(a.BlendHcl(b, t).Clamped().Hex())
}

// GradientText colors each rune of text along a gradient.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(GradientAt(from, to, t)).Render(string(r)))
	}
	return b.String()
}
