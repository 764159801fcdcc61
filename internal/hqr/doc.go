// Package hqr generates the sample data behind the Holonomic Quantum Reality
// explainer charts.
//
// Everything here is illustrative, not physics. The package exposes pure,
// deterministic generators keyed by a [DimensionMode]:
//
//   - [GenerateWaveSamples]: 101-point sweep of Ψ = R·e^(iS) over x ∈ [-10, 10]
//   - [GenerateManifoldSamples]: 21×21 projection of a compact manifold
//   - [BuildDiagram]: geometry of the AdS/CFT holographic diagram
//   - [Generate]: all three bundled into a [Frame]
//
// # Example
//
//	frame := hqr.Generate(hqr.ElevenD)
//	for _, s := range frame.Wave {
//	    fmt.Println(s.X, s.RealPart)
//	}
//
// Generators never mutate shared state, so switching modes back and forth
// always reproduces identical sequences.
package hqr
