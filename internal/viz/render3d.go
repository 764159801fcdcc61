package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera projects 3D points onto the canvas with a mild perspective.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Reset returns the camera to the head-on view.
func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ, c.Zoom = 0, 0, 0, 1
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a point in roughly [-1, 1]^3 to pixel coordinates of a
// sw x sh surface. A unit offset spans 0.4 of the shorter side, like the
// flat panels. Returns x, y, depth and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := 0.4 * float64(min(sw, sh))
	sx := roundInt(rot.X*scale*pScale) + sw/2
	sy := roundInt(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Color      lipgloss.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c lipgloss.Color) {
	w.Edges = append(w.Edges, Edge{s, e, c})
}
func (w *Wireframe) AddPoint(p Vec3, c lipgloss.Color) { w.Edges = append(w.Edges, Edge{p, p, c}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          lipgloss.Color
}

// Render3D draws the wireframe far-to-near so nearer edges own shared cells.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.SetPen(e.color)
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// SphereWireframe builds latitude and longitude rings of a sphere.
func SphereWireframe(center Vec3, radius float64, rings, segments int, col lipgloss.Color) *Wireframe {
	w := NewWireframe()
	point := func(lat, lon float64) Vec3 {
		return center.Add(Vec3{
			radius * math.Sin(lat) * math.Cos(lon),
			radius * math.Cos(lat),
			radius * math.Sin(lat) * math.Sin(lon),
		})
	}
	for i := 1; i < rings; i++ {
		lat := math.Pi * float64(i) / float64(rings)
		for j := 0; j < segments; j++ {
			lon1 := 2 * math.Pi * float64(j) / float64(segments)
			lon2 := 2 * math.Pi * float64(j+1) / float64(segments)
			w.AddEdge(point(lat, lon1), point(lat, lon2), col)
		}
	}
	for j := 0; j < segments; j += 2 {
		lon := 2 * math.Pi * float64(j) / float64(segments)
		for i := 0; i < rings; i++ {
			lat1 := math.Pi * float64(i) / float64(rings)
			lat2 := math.Pi * float64(i+1) / float64(rings)
			w.AddEdge(point(lat1, lon), point(lat2, lon), col)
		}
	}
	return w
}
