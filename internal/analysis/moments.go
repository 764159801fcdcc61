package analysis

import (
	"math"

	"github.com/san-kum/hqrviz/internal/hqr"
)

// Moments summarizes the probability density |Ψ|² of a wave sweep.
type Moments struct {
	Norm     float64
	MeanX    float64
	Spread   float64
	PeakX    float64
	MaxSpeed float64
}

// WaveMoments integrates with the trapezoid rule over the sample grid.
func WaveMoments(samples []hqr.WaveSample) Moments {
	var m Moments
	if len(samples) == 0 {
		return m
	}
	var norm, first, second float64
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		dx := b.X - a.X
		norm += (a.Probability + b.Probability) / 2 * dx
		first += (a.X*a.Probability + b.X*b.Probability) / 2 * dx
		second += (a.X*a.X*a.Probability + b.X*b.X*b.Probability) / 2 * dx
	}
	m.Norm = norm
	if norm > 0 {
		m.MeanX = first / norm
		m.Spread = math.Sqrt(math.Max(0, second/norm-m.MeanX*m.MeanX))
	}
	peak := samples[0]
	for _, s := range samples {
		if s.Probability > peak.Probability {
			peak = s
		}
		m.MaxSpeed = math.Max(m.MaxSpeed, math.Abs(s.Velocity))
	}
	m.PeakX = peak.X
	return m
}
