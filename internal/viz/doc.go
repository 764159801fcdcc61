// Package viz draws HQR frames.
//
// A [Renderer] turns an [hqr.Frame] into pixels on a set of named targets
// ([TargetWave], [TargetCorrelation], [TargetHolographic]). Three strategies
// are provided and exactly one is wired at start-up:
//
//   - [ChartRenderer]: declarative go-chart line and scatter charts (PNG/SVG)
//   - [CanvasRenderer]: immediate-mode painting onto colour Braille [Canvas]es
//   - particle animation: [ParticleField] and [Hologram] stepped every frame
//     by the TUI loop, drawn with [DrawParticles] and [DrawHologram]
//
// Colours always come from an explicit [Palette]; nothing here reads the
// terminal or environment.
//
// # Missing targets
//
// A strategy that cannot find a target skips that panel, draws the others
// and reports a [*MissingTargetError] for each gap. Use [MissingTargets] to
// split those from real failures.
package viz
