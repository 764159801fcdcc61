// Package analysis provides numeric summaries of generated wave sweeps.
//
//   - [WaveSpectrum]: power spectrum of one wave field over spatial frequency
//   - [WaveMoments]: norm, mean position and spread of |Ψ|²
//
// The hidden-order curve oscillates faster in 11D, which shows up as a
// higher spectral peak:
//
//	s, _ := analysis.WaveSpectrum(hqr.GenerateWaveSamples(hqr.ElevenD), hqr.FieldHiddenOrder)
//	freq, _ := s.Peak()
package analysis
