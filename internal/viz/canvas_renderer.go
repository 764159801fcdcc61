package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/hqr"
)

const (
	// gridSpacing is the grid pitch in sub-pixels.
	gridSpacing = 12
	// curveScale is the fraction of the half-height a unit amplitude spans.
	curveScale = 0.4
	// manifoldExtent normalizes plot-ready manifold coordinates to ~[-1, 1].
	manifoldExtent = 13.0
)

// CanvasRenderer is the immediate-mode strategy: every Render clears each
// target canvas and repaints it from scratch.
type CanvasRenderer struct {
	palette Palette
	targets map[string]*Canvas
	camera  *Camera
}

// NewCanvasRenderer draws onto the canvases keyed by target ID.
func NewCanvasRenderer(p Palette, targets map[string]*Canvas) *CanvasRenderer {
	return &CanvasRenderer{palette: p, targets: targets, camera: NewCamera()}
}

func (r *CanvasRenderer) Name() string { return StrategyCanvas }

// Camera is the view used for the manifold projection.
func (r *CanvasRenderer) Camera() *Camera { return r.camera }

// SetPalette swaps colours for the next Render.
func (r *CanvasRenderer) SetPalette(p Palette) { r.palette = p }

// Target returns the canvas registered for id.
func (r *CanvasRenderer) Target(id string) (*Canvas, bool) {
	c, ok := r.targets[id]
	return c, ok && c != nil
}

func (r *CanvasRenderer) Render(frame hqr.Frame) error {
	return renderPanels(StrategyCanvas, r.Target, frame, []panel[*Canvas]{
		{TargetWave, r.drawWave},
		{TargetCorrelation, r.drawCorrelation},
		{TargetHolographic, r.drawHolographic},
	})
}

func (r *CanvasRenderer) begin(c *Canvas) {
	c.Clear()
	c.Background = r.palette.Background
}

func (r *CanvasRenderer) drawGrid(c *Canvas) {
	pw, ph := c.PixelSize()
	c.SetPen(r.palette.Grid)
	for x := 0; x < pw; x += gridSpacing {
		c.DrawDashedLine(x, 0, x, ph-1, 1, 3)
	}
	for y := 0; y < ph; y += gridSpacing {
		c.DrawDashedLine(0, y, pw-1, y, 1, 3)
	}
}

func (r *CanvasRenderer) drawAxes(c *Canvas) {
	pw, ph := c.PixelSize()
	c.SetPen(r.palette.Axes)
	c.DrawLine(0, ph/2, pw-1, ph/2)
	c.DrawLine(pw/2, 0, pw/2, ph-1)
}

func (r *CanvasRenderer) legend(c *Canvas, row int, swatch rune, color lipgloss.Color, label string) {
	c.WriteText(1, row, string(swatch), color)
	c.WriteText(3, row, label, r.palette.Text)
}

func (r *CanvasRenderer) drawWave(c *Canvas, frame hqr.Frame) error {
	r.begin(c)
	r.drawGrid(c)
	r.drawAxes(c)

	pw, ph := c.PixelSize()
	cy := float64(ph) / 2
	curves := []struct {
		field  hqr.WaveField
		color  lipgloss.Color
		dashed bool
	}{
		{hqr.FieldRealPart, r.palette.RealPart, false},
		{hqr.FieldImagPart, r.palette.ImagPart, false},
		{hqr.FieldHiddenOrder, r.palette.HiddenOrder, true},
	}
	for _, cv := range curves {
		pts := make([][2]int, len(frame.Wave))
		for i, s := range frame.Wave {
			v, _ := s.Value(cv.field)
			px := (s.X - hqr.WaveXMin) / (hqr.WaveXMax - hqr.WaveXMin) * float64(pw-1)
			py := cy - v*float64(ph)*curveScale
			pts[i] = [2]int{roundInt(px), roundInt(py)}
		}
		c.SetPen(cv.color)
		if cv.dashed {
			c.DrawPolyline(pts, 3, 3)
		} else {
			c.DrawPolyline(pts, 0, 0)
		}
	}

	r.legend(c, 0, '■', r.palette.RealPart, "Real Part (Re[Ψ])")
	r.legend(c, 1, '■', r.palette.ImagPart, "Imaginary Part (Im[Ψ])")
	r.legend(c, 2, '■', r.palette.HiddenOrder, "Hidden Order ⟨O(x)O(0)⟩")
	return nil
}

// CorrelationColor shades a correlation strength between the weak and
// strong palette colours.
func CorrelationColor(p Palette, value float64) lipgloss.Color {
	return Blend(p.WeakCorrelation, p.StrongCorrelation, value)
}

func (r *CanvasRenderer) drawCorrelation(c *Canvas, frame hqr.Frame) error {
	r.begin(c)
	r.drawGrid(c)
	r.drawAxes(c)

	pw, ph := c.PixelSize()
	for _, s := range frame.Manifold {
		p := Vec3{s.X / manifoldExtent, s.Y / manifoldExtent, s.Z / manifoldExtent}
		x, y, _, ok := r.camera.Project(p, pw, ph)
		if !ok {
			continue
		}
		c.SetPen(CorrelationColor(r.palette, s.Value))
		c.FillCircle(x, y, 1)
	}

	const ramp = 10
	c.WriteText(1, 0, "Weak ", r.palette.Text)
	for i := 0; i < ramp; i++ {
		c.WriteText(6+i, 0, "█", CorrelationColor(r.palette, float64(i)/float64(ramp-1)))
	}
	c.WriteText(6+ramp, 0, " Strong", r.palette.Text)
	c.WriteText(1, 1, "projection from "+frame.Mode.String(), r.palette.TextMuted)
	return nil
}

func (r *CanvasRenderer) drawHolographic(c *Canvas, frame hqr.Frame) error {
	r.begin(c)
	pw, ph := c.PixelSize()
	cx, cy := pw/2, ph/2
	radius := float64(min(pw, ph)) * curveScale
	d := frame.Diagram

	ring := func(circle hqr.Circle) {
		c.SetPenAlpha(r.palette.Role(circle.Role), circle.Alpha)
		rr := circle.Radius * radius
		for w := 0; w < max(1, roundInt(circle.Width)-1); w++ {
			c.DrawCircle(cx, cy, roundInt(rr)-w)
		}
	}
	segment := func(s hqr.Segment, alpha float64) {
		c.SetPenAlpha(r.palette.Role(s.Role), s.Alpha*alpha)
		c.DrawLine(
			cx+roundInt(s.X1*radius), cy+roundInt(s.Y1*radius),
			cx+roundInt(s.X2*radius), cy+roundInt(s.Y2*radius),
		)
	}
	node := func(n hqr.Node, alpha float64) {
		c.SetPenAlpha(r.palette.Role(n.Role), alpha)
		c.FillCircle(cx+roundInt(n.X*radius), cy+roundInt(n.Y*radius), max(1, roundInt(n.Radius*radius)))
	}

	ring(d.Boundary)
	for _, rg := range d.Rings {
		ring(rg)
	}
	for _, s := range d.Radials {
		segment(s, 1)
	}
	node(d.Center, 1)
	if d.Network != nil {
		for _, n := range d.Network.Nodes {
			node(n, d.Network.Alpha)
		}
		for _, e := range d.Network.Edges {
			segment(e, d.Network.Alpha)
		}
	}

	for i, entry := range d.Legend {
		swatch := '─'
		if entry.Glyph == hqr.GlyphDot {
			swatch = '●'
		}
		r.legend(c, i, swatch, r.palette.Role(entry.Role), entry.Label)
	}
	return nil
}

// DrawSamplesCurve is a helper for small previews: it plots one wave field
// across the whole canvas, scaled to its own range.
func DrawSamplesCurve(c *Canvas, samples []hqr.WaveSample, field hqr.WaveField, color lipgloss.Color) {
	col, ok := hqr.Column(samples, field)
	if !ok || len(col) < 2 {
		return
	}
	lo, hi := col[0], col[0]
	for _, v := range col {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pw, ph := c.PixelSize()
	pts := make([][2]int, len(col))
	for i, v := range col {
		pts[i] = [2]int{
			i * (pw - 1) / (len(col) - 1),
			roundInt(float64(ph-1) - (v-lo)/(hi-lo)*float64(ph-1)),
		}
	}
	c.SetPen(color)
	c.DrawPolyline(pts, 0, 0)
}
