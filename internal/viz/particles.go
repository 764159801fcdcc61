package viz

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// Particle field defaults, in field units.
const (
	FieldWidth       = 300.0
	FieldHeight      = 200.0
	DefaultParticles = 50

	WaveIncrement = 0.05
	Damping       = 0.95
	LinkDistance  = 50.0

	waveForce    = 0.1
	pointerForce = 0.05
)

type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }

type Particle struct {
	Pos Vec2
	Vel Vec2
}

// Pointer is the last known mouse position in field units. Present is false
// until the pointer has entered the field.
type Pointer struct {
	X, Y    float64
	Present bool
}

// ParticleField is the whole mutable state of the particle animation.
type ParticleField struct {
	Width     float64
	Height    float64
	Wave      float64
	Particles []Particle
}

// NewParticleField scatters n resting particles uniformly over the field.
func NewParticleField(n int, width, height float64, rng *rand.Rand) ParticleField {
	f := ParticleField{Width: width, Height: height, Particles: make([]Particle, n)}
	for i := range f.Particles {
		f.Particles[i].Pos = Vec2{rng.Float64() * width, rng.Float64() * height}
	}
	return f
}

// Center is the attractor every particle is pushed relative to.
func (f ParticleField) Center() Vec2 { return Vec2{f.Width / 2, f.Height / 2} }

// Step advances the field by one tick and returns the new state. f is not
// modified.
func Step(f ParticleField, ptr Pointer) ParticleField {
	next := f
	next.Wave = f.Wave + WaveIncrement
	next.Particles = make([]Particle, len(f.Particles))

	pulse := math.Sin(next.Wave) * waveForce
	center := f.Center()
	for i, p := range f.Particles {
		d := p.Pos.Sub(center)
		influence := 0.0
		if ptr.Present && f.Width > 0 {
			influence = (1 - p.Pos.Sub(Vec2{ptr.X, ptr.Y}).Length()/f.Width) * pointerForce
		}
		force := (pulse + influence) / (d.Length() + 1)

		p.Vel = p.Vel.Add(d.Scale(force)).Scale(Damping)
		p.Pos = p.Pos.Add(p.Vel)
		if p.Pos.X < 0 || p.Pos.X > f.Width {
			p.Vel.X = -p.Vel.X
		}
		if p.Pos.Y < 0 || p.Pos.Y > f.Height {
			p.Vel.Y = -p.Vel.Y
		}
		next.Particles[i] = p
	}
	return next
}

// Links returns index pairs of particles closer than LinkDistance.
func (f ParticleField) Links() [][2]int {
	var links [][2]int
	for i := 0; i < len(f.Particles); i++ {
		for j := i + 1; j < len(f.Particles); j++ {
			if f.Particles[i].Pos.Sub(f.Particles[j].Pos).Length() < LinkDistance {
				links = append(links, [2]int{i, j})
			}
		}
	}
	return links
}

// toCanvas maps field units onto canvas sub-pixels.
func toCanvas(c *Canvas, f ParticleField, p Vec2) (int, int) {
	pw, ph := c.PixelSize()
	if f.Width <= 0 || f.Height <= 0 {
		return 0, 0
	}
	return roundInt(p.X / f.Width * float64(pw-1)), roundInt(p.Y / f.Height * float64(ph-1))
}

// DrawParticles clears c and paints the links first, then the particles.
func DrawParticles(c *Canvas, f ParticleField, p Palette) {
	c.Clear()
	c.Background = p.Background
	c.SetPenAlpha(p.ParticleLink, 0.4)
	for _, l := range f.Links() {
		x0, y0 := toCanvas(c, f, f.Particles[l[0]].Pos)
		x1, y1 := toCanvas(c, f, f.Particles[l[1]].Pos)
		c.DrawLine(x0, y0, x1, y1)
	}
	c.SetPen(p.Particle)
	for _, pt := range f.Particles {
		x, y := toCanvas(c, f, pt.Pos)
		c.FillCircle(x, y, 1)
	}
}

// Hologram animation constants.
const (
	HologramSpeed    = 0.02
	hologramRadius   = 30.0
	hologramOffset   = 50.0
	rippleExtent     = 100.0
	rippleStep       = 20.0
	rippleAmplitude  = 10.0
	rippleFrequency  = 0.05
	hologramViewSize = 160.0
)

// Hologram is the state of the rotating bulk sphere over its boundary plane.
type Hologram struct {
	Angle float64
	Speed float64
}

func NewHologram() Hologram { return Hologram{Speed: HologramSpeed} }

func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

// StepHologram advances the rotation. The pointer's height picks the base
// speed and scales it; without a pointer the base speed is used unscaled.
func StepHologram(h Hologram, ptr Pointer, width, height float64) Hologram {
	if !ptr.Present {
		h.Angle += h.Speed
		return h
	}
	h.Speed = mapRange(ptr.Y, 0, height, 0.01, 0.05)
	h.Angle += h.Speed * mapRange(ptr.Y, 0, height, 0.5, 1.5)
	return h
}

// RippleHeight is the boundary plane displacement at (x, z).
func RippleHeight(x, z, angle, phase float64) float64 {
	return math.Sin(math.Hypot(x, z)*rippleFrequency+angle+phase) * rippleAmplitude
}

// HologramWireframe builds the bulk sphere and the rippling boundary grid in
// view units.
func HologramWireframe(h Hologram, ptr Pointer, width float64, bulk, boundary lipgloss.Color) *Wireframe {
	phase := 0.0
	if ptr.Present {
		phase = mapRange(ptr.X, 0, width, -0.1, 0.1)
	}

	sphere := SphereWireframe(Vec3{}, hologramRadius, 8, 12, bulk)
	w := NewWireframe()
	rotY := func(p Vec3) Vec3 {
		cos, sin := math.Cos(h.Angle), math.Sin(h.Angle)
		return Vec3{p.X*cos + p.Z*sin, p.Y, -p.X*sin + p.Z*cos}
	}
	lift := Vec3{0, -hologramOffset, 0}
	for _, e := range sphere.Edges {
		w.AddEdge(rotY(e.Start).Add(lift).Scale(1/hologramViewSize), rotY(e.End).Add(lift).Scale(1/hologramViewSize), e.Color)
	}

	// The plane is tilted 45° about X.
	tilt := func(p Vec3) Vec3 {
		cos, sin := math.Cos(math.Pi/4), math.Sin(math.Pi/4)
		return Vec3{p.X, p.Y*cos - p.Z*sin, p.Y*sin + p.Z*cos}
	}
	drop := Vec3{0, hologramOffset, 0}
	for x := -rippleExtent; x < rippleExtent; x += rippleStep {
		for z := -rippleExtent; z < rippleExtent; z += rippleStep {
			p := Vec3{x, RippleHeight(x, z, h.Angle, phase), z}
			w.AddPoint(tilt(p).Add(drop).Scale(1/hologramViewSize), boundary)
		}
	}
	return w
}

// DrawHologram clears c and paints the hologram through cam.
func DrawHologram(c *Canvas, h Hologram, ptr Pointer, width float64, cam *Camera, p Palette) {
	c.Clear()
	c.Background = p.Background
	Render3D(c, HologramWireframe(h, ptr, width, p.BulkSpace, p.Boundary), cam)
}
