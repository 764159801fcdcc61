package hqr

import "math"

const (
	WaveXMin    = -10.0
	WaveXMax    = 10.0
	WaveStep    = 0.2
	WaveSamples = 101

	// Mass in the guiding equation dx/dt = ∇S/m.
	Mass = 1.0
)

// WaveSample is one point of the 1-D wave function sweep Ψ = R·e^(iS).
type WaveSample struct {
	X           float64 `json:"x"`
	R           float64 `json:"r"`
	S           float64 `json:"s"`
	GradS       float64 `json:"grad_s"`
	Velocity    float64 `json:"velocity"`
	HiddenOrder float64 `json:"hidden_order"`
	RealPart    float64 `json:"real_part"`
	ImagPart    float64 `json:"imag_part"`
	Probability float64 `json:"probability"`
}

// GenerateWaveSamples sweeps x from -10 to 10 in steps of 0.2.
//
// The phase gradient is a backward difference over consecutive samples; the
// first sample differences against an implicit previous phase of 0.
func GenerateWaveSamples(mode DimensionMode) []WaveSample {
	k := mode.Complexity()
	out := make([]WaveSample, WaveSamples)
	prevS := 0.0
	for i := range out {
		x := WaveXMin + WaveStep*float64(i)
		r := math.Exp(-x * x / 4)
		s := (x * x / 2) * k
		gradS := (s - prevS) / WaveStep
		out[i] = WaveSample{
			X:           x,
			R:           r,
			S:           s,
			GradS:       gradS,
			Velocity:    gradS / Mass,
			HiddenOrder: r * math.Cos(k*x/2) * math.Exp(-math.Abs(x)/5),
			RealPart:    r * math.Cos(s),
			ImagPart:    r * math.Sin(s),
			Probability: r * r,
		}
		prevS = s
	}
	return out
}

// WaveField names one numeric column of a WaveSample.
type WaveField string

const (
	FieldR           WaveField = "r"
	FieldS           WaveField = "s"
	FieldGradS       WaveField = "grad_s"
	FieldVelocity    WaveField = "velocity"
	FieldHiddenOrder WaveField = "hidden_order"
	FieldRealPart    WaveField = "real_part"
	FieldImagPart    WaveField = "imag_part"
	FieldProbability WaveField = "probability"
)

// WaveFields lists the columns in export order.
var WaveFields = []WaveField{
	FieldR, FieldS, FieldGradS, FieldVelocity,
	FieldHiddenOrder, FieldRealPart, FieldImagPart, FieldProbability,
}

// Value returns the named field, and false for an unknown name.
func (s WaveSample) Value(f WaveField) (float64, bool) {
	switch f {
	case FieldR:
		return s.R, true
	case FieldS:
		return s.S, true
	case FieldGradS:
		return s.GradS, true
	case FieldVelocity:
		return s.Velocity, true
	case FieldHiddenOrder:
		return s.HiddenOrder, true
	case FieldRealPart:
		return s.RealPart, true
	case FieldImagPart:
		return s.ImagPart, true
	case FieldProbability:
		return s.Probability, true
	}
	return 0, false
}

// Column extracts one field across samples, in order.
func Column(samples []WaveSample, f WaveField) ([]float64, bool) {
	col := make([]float64, len(samples))
	for i, s := range samples {
		v, ok := s.Value(f)
		if !ok {
			return nil, false
		}
		col[i] = v
	}
	return col, true
}

// Xs returns the x coordinate of every sample.
func Xs(samples []WaveSample) []float64 {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X
	}
	return xs
}
