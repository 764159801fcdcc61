// Package metrics observes the animated particle field tick by tick.
package metrics

import (
	"math"

	"github.com/san-kum/hqrviz/internal/viz"
)

type Metric interface {
	Name() string
	Observe(f viz.ParticleField)
	Value() float64
	Reset()
}

// Energy is the mean kinetic energy per particle, averaged over every
// observed tick. Particles have unit mass.
type Energy struct {
	total   float64
	samples int
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(f viz.ParticleField) {
	if len(f.Particles) == 0 {
		return
	}
	var ke float64
	for _, p := range f.Particles {
		v := p.Vel.Length()
		ke += 0.5 * v * v
	}
	e.total += ke / float64(len(f.Particles))
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// Confinement is the fraction of particle observations inside the field.
type Confinement struct {
	inside  int
	samples int
}

func NewConfinement() *Confinement { return &Confinement{} }

func (c *Confinement) Name() string { return "confinement" }

func (c *Confinement) Observe(f viz.ParticleField) {
	for _, p := range f.Particles {
		c.samples++
		if p.Pos.X >= 0 && p.Pos.X <= f.Width && p.Pos.Y >= 0 && p.Pos.Y <= f.Height {
			c.inside++
		}
	}
}

func (c *Confinement) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Confinement) Reset() {
	c.inside = 0
	c.samples = 0
}

// Spread is the mean distance from the field centre at the latest tick.
type Spread struct {
	last float64
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(f viz.ParticleField) {
	if len(f.Particles) == 0 {
		s.last = 0
		return
	}
	c := f.Center()
	var sum float64
	for _, p := range f.Particles {
		sum += p.Pos.Sub(c).Length()
	}
	s.last = sum / float64(len(f.Particles))
}

func (s *Spread) Value() float64 { return s.last }
func (s *Spread) Reset()         { s.last = 0 }

// MaxSpeed is the fastest particle seen since the last reset.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(f viz.ParticleField) {
	for _, p := range f.Particles {
		m.max = math.Max(m.max, p.Vel.Length())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Default is the set shown by the animation.
func Default() []Metric {
	return []Metric{NewEnergy(), NewConfinement(), NewSpread(), NewMaxSpeed()}
}

func ObserveAll(ms []Metric, f viz.ParticleField) {
	for _, m := range ms {
		m.Observe(f)
	}
}
