package hqr

// Frame bundles everything a renderer needs for one redraw.
type Frame struct {
	Mode     DimensionMode
	Wave     []WaveSample
	Manifold []ManifoldSample
	Diagram  Diagram
}

// Generate builds a complete frame for mode.
func Generate(mode DimensionMode) Frame {
	return Frame{
		Mode:     mode,
		Wave:     GenerateWaveSamples(mode),
		Manifold: GenerateManifoldSamples(mode),
		Diagram:  BuildDiagram(mode),
	}
}

// Generator produces frames for the redraw controller.
type Generator interface {
	Generate(mode DimensionMode) (Frame, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(mode DimensionMode) (Frame, error)

func (f GeneratorFunc) Generate(mode DimensionMode) (Frame, error) { return f(mode) }

// Standard is the default generator backed by [Generate].
var Standard Generator = GeneratorFunc(func(mode DimensionMode) (Frame, error) {
	if !mode.Valid() {
		return Frame{}, &GenerationError{Mode: mode, Wrapped: ErrUnknownMode}
	}
	return Generate(mode), nil
})
