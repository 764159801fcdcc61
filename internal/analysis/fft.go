package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/hqrviz/internal/hqr"
)

// ErrTooFewSamples is returned when a series is too short to analyse.
var ErrTooFewSamples = errors.New("analysis: too few samples")

// PowerSpectrum returns the magnitudes of the first len(data)/2 FFT bins.
func PowerSpectrum(data []float64) []float64 {
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Spectrum is a power spectrum over spatial frequency (cycles per unit x).
type Spectrum struct {
	Field       hqr.WaveField
	Frequencies []float64
	Power       []float64
}

// WaveSpectrum transforms one field of an evenly spaced wave sweep.
func WaveSpectrum(samples []hqr.WaveSample, field hqr.WaveField) (Spectrum, error) {
	if len(samples) < 4 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrTooFewSamples, len(samples))
	}
	col, ok := hqr.Column(samples, field)
	if !ok {
		return Spectrum{}, fmt.Errorf("analysis: unknown wave field %q", field)
	}
	ps := PowerSpectrum(col)
	dx := samples[1].X - samples[0].X
	n := float64(len(col))
	freqs := make([]float64, len(ps))
	for k := range freqs {
		freqs[k] = float64(k) / (n * dx)
	}
	return Spectrum{Field: field, Frequencies: freqs, Power: ps}, nil
}

// Peak returns the strongest non-DC bin.
func (s Spectrum) Peak() (freq, power float64) {
	best := -1
	for k := 1; k < len(s.Power); k++ {
		if best < 0 || s.Power[k] > s.Power[best] {
			best = k
		}
	}
	if best < 0 {
		return 0, 0
	}
	return s.Frequencies[best], s.Power[best]
}
