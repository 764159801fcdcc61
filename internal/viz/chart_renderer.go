package viz

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ChartOptions sizes the declarative charts.
type ChartOptions struct {
	Format string
	Width  int
	Height int
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Format: FormatPNG, Width: 800, Height: 400}
}

// ChartRenderer is the declarative strategy: samples are bound to go-chart
// series and the library owns the drawing.
type ChartRenderer struct {
	palette Palette
	opts    ChartOptions
	targets map[string]io.Writer
}

// NewChartRenderer writes one encoded chart per target writer.
func NewChartRenderer(p Palette, opts ChartOptions, targets map[string]io.Writer) (*ChartRenderer, error) {
	switch opts.Format {
	case FormatPNG, FormatSVG:
	default:
		return nil, fmt.Errorf("%w: chart format %q", ErrUnknownStrategy, opts.Format)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: chart size %dx%d", ErrRender, opts.Width, opts.Height)
	}
	return &ChartRenderer{palette: p, opts: opts, targets: targets}, nil
}

func (r *ChartRenderer) Name() string { return StrategyChart }

func (r *ChartRenderer) target(id string) (io.Writer, bool) {
	w, ok := r.targets[id]
	return w, ok && w != nil
}

func (r *ChartRenderer) Render(frame hqr.Frame) error {
	return renderPanels(StrategyChart, r.target, frame, []panel[io.Writer]{
		{TargetWave, r.drawWave},
		{TargetCorrelation, r.drawCorrelation},
		{TargetHolographic, r.drawHolographic},
	})
}

func (r *ChartRenderer) provider() chart.RendererProvider {
	if r.opts.Format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// ChartColor converts a palette colour for go-chart.
func ChartColor(c lipgloss.Color) drawing.Color {
	red, green, blue, ok := RGB(c)
	if !ok {
		return drawing.ColorBlack
	}
	return drawing.Color{R: red, G: green, B: blue, A: 255}
}

func (r *ChartRenderer) axisStyle() chart.Style {
	return chart.Style{
		FontColor:   ChartColor(r.palette.TextMuted),
		StrokeColor: ChartColor(r.palette.Axes),
	}
}

func (r *ChartRenderer) gridStyle() chart.Style {
	return chart.Style{
		StrokeColor:     ChartColor(r.palette.Grid),
		StrokeWidth:     1,
		StrokeDashArray: []float64{3, 3},
	}
}

func (r *ChartRenderer) base(title string) chart.Chart {
	return chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: ChartColor(r.palette.Heading)},
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{
			FillColor: ChartColor(r.palette.Background),
			Padding:   chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: ChartColor(r.palette.Surface)},
	}
}

func (r *ChartRenderer) legendStyle() chart.Style {
	return chart.Style{
		FillColor:   ChartColor(r.palette.Surface),
		FontColor:   ChartColor(r.palette.Text),
		StrokeColor: ChartColor(r.palette.Grid),
	}
}

// waveRange bounds the wave chart's y axis. go-chart does not clip to the
// axis range, so series are clamped before binding.
const waveRange = 1.2

func clampRange(ys []float64, lo, hi float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = math.Max(lo, math.Min(hi, y))
	}
	return out
}

func (r *ChartRenderer) drawWave(w io.Writer, frame hqr.Frame) error {
	xs := hqr.Xs(frame.Wave)
	series := []struct {
		name  string
		field hqr.WaveField
		color lipgloss.Color
		dash  []float64
	}{
		{"Real Part (Re[Ψ])", hqr.FieldRealPart, r.palette.RealPart, nil},
		{"Imaginary Part (Im[Ψ])", hqr.FieldImagPart, r.palette.ImagPart, nil},
		{"Bohmian Velocity (∇S/m)", hqr.FieldVelocity, r.palette.Velocity, nil},
		{"Hidden Order ⟨O(x)O(0)⟩", hqr.FieldHiddenOrder, r.palette.HiddenOrder, []float64{3, 3}},
	}

	c := r.base("Bohmian Mechanics Wave Function (Ψ = Re^(iS/ℏ))")
	c.XAxis = chart.XAxis{Name: "Position (x)", Style: r.axisStyle(), GridMajorStyle: r.gridStyle()}
	c.YAxis = chart.YAxis{
		Name:           "Value",
		Style:          r.axisStyle(),
		GridMajorStyle: r.gridStyle(),
		Range:          &chart.ContinuousRange{Min: -waveRange, Max: waveRange},
	}
	for _, s := range series {
		ys, _ := hqr.Column(frame.Wave, s.field)
		ys = clampRange(ys, -waveRange, waveRange)
		c.Series = append(c.Series, chart.ContinuousSeries{
			Name:    s.name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor:     ChartColor(s.color),
				StrokeWidth:     2,
				StrokeDashArray: s.dash,
			},
		})
	}
	c.Elements = []chart.Renderable{chart.Legend(&c, r.legendStyle())}
	return c.Render(r.provider(), w)
}

// dotWidth maps the plot-ready z coordinate to a marker size.
func dotWidth(z float64) float64 {
	t := (z + hqr.ManifoldZScale*1.2) / (hqr.ManifoldZScale * 2.4)
	return 1.5 + 4.5*math.Max(0, math.Min(t, 1))
}

func (r *ChartRenderer) drawCorrelation(w io.Writer, frame hqr.Frame) error {
	n := len(frame.Manifold)
	xs, ys := make([]float64, n), make([]float64, n)
	for i, s := range frame.Manifold {
		xs[i], ys[i] = s.X, s.Y
	}
	samples := frame.Manifold

	c := r.base(fmt.Sprintf("Hidden Order Correlation in %s Space", frame.Mode))
	c.XAxis = chart.XAxis{
		Name: "Dimension 1", Style: r.axisStyle(), GridMajorStyle: r.gridStyle(),
		Range: &chart.ContinuousRange{Min: -14, Max: 14},
	}
	c.YAxis = chart.YAxis{
		Name: "Dimension 2", Style: r.axisStyle(), GridMajorStyle: r.gridStyle(),
		Range: &chart.ContinuousRange{Min: -14, Max: 14},
	}
	c.Series = []chart.Series{chart.ContinuousSeries{
		Name:    "Manifold Points",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return dotWidth(samples[index].Z)
			},
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				return ChartColor(CorrelationColor(r.palette, samples[index].Value))
			},
		},
	}}
	c.Elements = []chart.Renderable{r.correlationLegend()}
	return c.Render(r.provider(), w)
}

func (r *ChartRenderer) correlationLegend() chart.Renderable {
	return func(cr chart.Renderer, box chart.Box, defaults chart.Style) {
		cr.SetFont(defaults.Font)
		cr.SetFontSize(10)
		cr.SetFontColor(ChartColor(r.palette.TextMuted))
		x, y := box.Left+12, box.Top+14
		for _, e := range []struct {
			label string
			value float64
		}{{"Strong", 1}, {"Weak", 0}} {
			cr.SetFillColor(ChartColor(CorrelationColor(r.palette, e.value)))
			cr.SetStrokeColor(drawing.ColorTransparent)
			cr.Circle(5, x, y)
			cr.Fill()
			cr.Text(e.label, x+10, y+4)
			x += 70
		}
	}
}

func (r *ChartRenderer) drawHolographic(w io.Writer, frame hqr.Frame) error {
	cr, err := r.provider()(r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	cr.SetFont(font)

	width, height := r.opts.Width, r.opts.Height
	fill := ChartColor(r.palette.Background)
	cr.SetFillColor(fill)
	cr.SetStrokeColor(fill)
	cr.MoveTo(0, 0)
	cr.LineTo(width, 0)
	cr.LineTo(width, height)
	cr.LineTo(0, height)
	cr.Close()
	cr.FillStroke()

	cx, cy := width/2, height/2
	radius := float64(min(width, height)) * curveScale
	at := func(x, y float64) (int, int) {
		return cx + roundInt(x*radius), cy + roundInt(y*radius)
	}
	d := frame.Diagram

	stroke := func(role hqr.Role, alpha, width float64) {
		cr.SetStrokeColor(ChartColor(r.palette.Role(role)).WithAlpha(uint8(alpha * 255)))
		cr.SetStrokeWidth(width)
	}
	circle := func(c hqr.Circle) {
		stroke(c.Role, c.Alpha, c.Width)
		cr.SetFillColor(drawing.ColorTransparent)
		cr.Circle(c.Radius*radius, cx, cy)
		cr.Stroke()
	}
	line := func(s hqr.Segment, alpha float64) {
		stroke(s.Role, s.Alpha*alpha, s.Width)
		x1, y1 := at(s.X1, s.Y1)
		x2, y2 := at(s.X2, s.Y2)
		cr.MoveTo(x1, y1)
		cr.LineTo(x2, y2)
		cr.Stroke()
	}
	dot := func(n hqr.Node, alpha float64) {
		cr.SetFillColor(ChartColor(r.palette.Role(n.Role)).WithAlpha(uint8(alpha * 255)))
		cr.SetStrokeColor(drawing.ColorTransparent)
		x, y := at(n.X, n.Y)
		cr.Circle(math.Max(2, n.Radius*radius), x, y)
		cr.Fill()
	}

	circle(d.Boundary)
	for _, ring := range d.Rings {
		circle(ring)
	}
	for _, s := range d.Radials {
		line(s, 1)
	}
	dot(d.Center, 1)
	if d.Network != nil {
		for _, n := range d.Network.Nodes {
			dot(n, d.Network.Alpha)
		}
		for _, e := range d.Network.Edges {
			line(e, d.Network.Alpha)
		}
	}

	cr.SetFontSize(10)
	for i, entry := range d.Legend {
		y := height - 16*(len(d.Legend)-i)
		if entry.Glyph == hqr.GlyphDot {
			cr.SetFillColor(ChartColor(r.palette.Role(entry.Role)))
			cr.Circle(5, 17, y-4)
			cr.Fill()
		} else {
			stroke(entry.Role, 1, 2)
			cr.MoveTo(10, y-4)
			cr.LineTo(25, y-4)
			cr.Stroke()
		}
		cr.SetFontColor(ChartColor(r.palette.TextMuted))
		cr.Text(entry.Label, 35, y)
	}

	cr.SetFontSize(12)
	cr.SetFontColor(ChartColor(r.palette.Heading))
	cr.Text(strings.ToUpper("Holographic Principle: AdS/CFT Correspondence"), 10, 20)
	return cr.Save(w)
}
