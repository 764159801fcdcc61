package viz

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/hqr"
)

// Palette maps the semantic colour names used by every renderer.
type Palette struct {
	Name              string
	Background        lipgloss.Color
	Surface           lipgloss.Color
	Grid              lipgloss.Color
	Axes              lipgloss.Color
	Text              lipgloss.Color
	TextMuted         lipgloss.Color
	Heading           lipgloss.Color
	RealPart          lipgloss.Color
	ImagPart          lipgloss.Color
	Velocity          lipgloss.Color
	HiddenOrder       lipgloss.Color
	StrongCorrelation lipgloss.Color
	WeakCorrelation   lipgloss.Color
	BulkSpace         lipgloss.Color
	Boundary          lipgloss.Color
	BoundaryLink      lipgloss.Color
	Network           lipgloss.Color
	Particle          lipgloss.Color
	ParticleLink      lipgloss.Color
	Error             lipgloss.Color
}

var (
	PaletteDark = Palette{
		Name:              "dark",
		Background:        lipgloss.Color("#0d1117"),
		Surface:           lipgloss.Color("#161b22"),
		Grid:              lipgloss.Color("#30363d"),
		Axes:              lipgloss.Color("#8b949e"),
		Text:              lipgloss.Color("#e0e0e0"),
		TextMuted:         lipgloss.Color("#8b949e"),
		Heading:           lipgloss.Color("#58a6ff"),
		RealPart:          lipgloss.Color("#8884d8"),
		ImagPart:          lipgloss.Color("#82ca9d"),
		Velocity:          lipgloss.Color("#ff7300"),
		HiddenOrder:       lipgloss.Color("#ff0000"),
		StrongCorrelation: lipgloss.Color("#58a6ff"),
		WeakCorrelation:   lipgloss.Color("#3b82f6"),
		BulkSpace:         lipgloss.Color("#3b82f6"),
		Boundary:          lipgloss.Color("#ef4444"),
		BoundaryLink:      lipgloss.Color("#fca5a5"),
		Network:           lipgloss.Color("#93c5fd"),
		Particle:          lipgloss.Color("#e0e0e0"),
		ParticleLink:      lipgloss.Color("#e94560"),
		Error:             lipgloss.Color("#f85149"),
	}

	PaletteLight = Palette{
		Name:              "light",
		Background:        lipgloss.Color("#f8f9fa"),
		Surface:           lipgloss.Color("#ffffff"),
		Grid:              lipgloss.Color("#e5e7eb"),
		Axes:              lipgloss.Color("#666666"),
		Text:              lipgloss.Color("#333333"),
		TextMuted:         lipgloss.Color("#666666"),
		Heading:           lipgloss.Color("#1e40af"),
		RealPart:          lipgloss.Color("#8884d8"),
		ImagPart:          lipgloss.Color("#82ca9d"),
		Velocity:          lipgloss.Color("#ff7300"),
		HiddenOrder:       lipgloss.Color("#ff0000"),
		StrongCorrelation: lipgloss.Color("#1e3a8a"),
		WeakCorrelation:   lipgloss.Color("#bfdbfe"),
		BulkSpace:         lipgloss.Color("#1d4ed8"),
		Boundary:          lipgloss.Color("#ef4444"),
		BoundaryLink:      lipgloss.Color("#fca5a5"),
		Network:           lipgloss.Color("#93c5fd"),
		Particle:          lipgloss.Color("#16213e"),
		ParticleLink:      lipgloss.Color("#e94560"),
		Error:             lipgloss.Color("#dc2626"),
	}

	Palettes = []Palette{PaletteDark, PaletteLight}
)

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, error) {
	for _, p := range Palettes {
		if p.Name == name {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// PaletteNames returns list of available palette names
func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

func (p Palette) slots() map[string]lipgloss.Color {
	return map[string]lipgloss.Color{
		"background":        p.Background,
		"surface":           p.Surface,
		"grid":              p.Grid,
		"axes":              p.Axes,
		"text":              p.Text,
		"textMuted":         p.TextMuted,
		"heading":           p.Heading,
		"realPart":          p.RealPart,
		"imagPart":          p.ImagPart,
		"velocity":          p.Velocity,
		"hiddenOrder":       p.HiddenOrder,
		"strongCorrelation": p.StrongCorrelation,
		"weakCorrelation":   p.WeakCorrelation,
		"bulkSpace":         p.BulkSpace,
		"boundary":          p.Boundary,
		"boundaryLink":      p.BoundaryLink,
		"network":           p.Network,
		"particle":          p.Particle,
		"particleLink":      p.ParticleLink,
		"error":             p.Error,
	}
}

// Lookup resolves a semantic name such as "realPart" or "boundary".
func (p Palette) Lookup(name string) (lipgloss.Color, bool) {
	c, ok := p.slots()[name]
	return c, ok
}

// SemanticNames lists every name Lookup understands, sorted.
func (p Palette) SemanticNames() []string {
	slots := p.slots()
	names := make([]string, 0, len(slots))
	for k := range slots {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Role returns the colour for a diagram role.
func (p Palette) Role(r hqr.Role) lipgloss.Color {
	if c, ok := p.Lookup(string(r)); ok {
		return c
	}
	return p.Text
}

// Override replaces the named slots, e.g. from a config file.
func (p Palette) Override(colors map[string]string) (Palette, error) {
	for name, hex := range colors {
		if _, ok := p.Lookup(name); !ok {
			return p, fmt.Errorf("%w: unknown colour %q", ErrUnknownPalette, name)
		}
		if _, _, _, ok := parseHex(hex); !ok {
			return p, fmt.Errorf("%w: bad hex %q for %s", ErrUnknownPalette, hex, name)
		}
		c := lipgloss.Color(hex)
		switch name {
		case "background":
			p.Background = c
		case "surface":
			p.Surface = c
		case "grid":
			p.Grid = c
		case "axes":
			p.Axes = c
		case "text":
			p.Text = c
		case "textMuted":
			p.TextMuted = c
		case "heading":
			p.Heading = c
		case "realPart":
			p.RealPart = c
		case "imagPart":
			p.ImagPart = c
		case "velocity":
			p.Velocity = c
		case "hiddenOrder":
			p.HiddenOrder = c
		case "strongCorrelation":
			p.StrongCorrelation = c
		case "weakCorrelation":
			p.WeakCorrelation = c
		case "bulkSpace":
			p.BulkSpace = c
		case "boundary":
			p.Boundary = c
		case "boundaryLink":
			p.BoundaryLink = c
		case "network":
			p.Network = c
		case "particle":
			p.Particle = c
		case "particleLink":
			p.ParticleLink = c
		case "error":
			p.Error = c
		}
	}
	return p, nil
}
