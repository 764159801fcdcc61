package hqr

import "math"

const (
	ManifoldResolution = 20
	ManifoldSamples    = (ManifoldResolution + 1) * (ManifoldResolution + 1)

	// Plot-ready scaling of the projected coordinates.
	ManifoldXYScale = 10.0
	ManifoldZScale  = 5.0
)

// ManifoldSample is one point of the projected (u, v) surface sweep.
type ManifoldSample struct {
	U     float64 `json:"u"`
	V     float64 `json:"v"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Value float64 `json:"value"`
}

// GenerateManifoldSamples sweeps u over [0, 2π] (outer) and v over [0, π]
// (inner), both endpoints included.
func GenerateManifoldSamples(mode DimensionMode) []ManifoldSample {
	scale := mode.Scale()
	out := make([]ManifoldSample, 0, ManifoldSamples)
	for i := 0; i <= ManifoldResolution; i++ {
		u := float64(i) / ManifoldResolution * 2 * math.Pi
		for j := 0; j <= ManifoldResolution; j++ {
			v := float64(j) / ManifoldResolution * math.Pi
			x, y, z := project(mode, u, v)
			c := math.Cos(scale*u) * math.Sin(scale*v)
			out = append(out, ManifoldSample{
				U:     u,
				V:     v,
				X:     x * ManifoldXYScale,
				Y:     y * ManifoldXYScale,
				Z:     z * ManifoldZScale,
				Value: c * c,
			})
		}
	}
	return out
}

func project(mode DimensionMode, u, v float64) (x, y, z float64) {
	x = math.Sin(u) * math.Sin(v)
	y = math.Sin(u) * math.Cos(v)
	z = math.Cos(u)
	if mode == ElevenD {
		x += 0.3 * math.Sin(3*u)
		y += 0.3 * math.Cos(2*v)
		z += 0.2 * math.Sin(5*v)
	}
	return x, y, z
}

// Bounds returns the extent of the sample cloud on each axis.
func Bounds(samples []ManifoldSample) (minP, maxP [3]float64) {
	if len(samples) == 0 {
		return
	}
	minP = [3]float64{samples[0].X, samples[0].Y, samples[0].Z}
	maxP = minP
	for _, s := range samples[1:] {
		p := [3]float64{s.X, s.Y, s.Z}
		for k := range p {
			minP[k] = math.Min(minP[k], p[k])
			maxP[k] = math.Max(maxP[k], p[k])
		}
	}
	return minP, maxP
}
