package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Muted    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	Banner   lipgloss.Style
	KeyHint  lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Grid).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Heading),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Grid),
		Muted: lipgloss.NewStyle().Foreground(p.TextMuted),
		Value: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Heading).
			Underline(true),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Error).
			Padding(0, 1),
		KeyHint: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Italic(true),
	}
}

// GradientText colours each rune of text on a ramp from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(Blend(start, end, t))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// Sparkline renders values as a one-line bar chart of the given width.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		v := values[i*len(values)/width]
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// Blend mixes from toward to by t in [0,1]. Unparseable colours yield to.
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	sr, sg, sb, ok1 := parseHex(string(from))
	er, eg, eb, ok2 := parseHex(string(to))
	if !ok1 || !ok2 {
		return to
	}
	t = max(0, min(t, 1))
	r := int(float64(sr) + t*float64(er-sr) + 0.5)
	g := int(float64(sg) + t*float64(eg-sg) + 0.5)
	b := int(float64(sb) + t*float64(eb-sb) + 0.5)
	return lipgloss.Color(hexColor(r, g, b))
}

// RGB splits a #rrggbb colour.
func RGB(c lipgloss.Color) (r, g, b uint8, ok bool) {
	ri, gi, bi, ok := parseHex(string(c))
	return uint8(ri), uint8(gi), uint8(bi), ok
}

// Helper functions
func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255, false
	}
	var okR, okG, okB bool
	r, okR = parseHexByte(hex[1:3])
	g, okG = parseHexByte(hex[3:5])
	b, okB = parseHexByte(hex[5:7])
	return r, g, b, okR && okG && okB
}

func parseHexByte(s string) (int, bool) {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(v, 255))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
