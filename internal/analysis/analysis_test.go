package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hqrviz/internal/hqr"
)

func TestPowerSpectrumSine(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}
	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}
	peak := 0
	for k := range ps {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 4 {
		t.Errorf("expected peak at bin 4, got %d", peak)
	}
}

func TestWaveSpectrum(t *testing.T) {
	s, err := WaveSpectrum(hqr.GenerateWaveSamples(hqr.FourD), hqr.FieldRealPart)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Power) != hqr.WaveSamples/2 || len(s.Frequencies) != len(s.Power) {
		t.Fatalf("unexpected lengths %d/%d", len(s.Power), len(s.Frequencies))
	}
	if s.Frequencies[0] != 0 {
		t.Errorf("first bin should be DC, got %v", s.Frequencies[0])
	}
	if want := 1 / (hqr.WaveSamples * hqr.WaveStep); math.Abs(s.Frequencies[1]-want) > 1e-9 {
		t.Errorf("bin spacing %v, want %v", s.Frequencies[1], want)
	}
}

func TestHiddenOrderPeakRisesWithComplexity(t *testing.T) {
	four, err := WaveSpectrum(hqr.GenerateWaveSamples(hqr.FourD), hqr.FieldHiddenOrder)
	if err != nil {
		t.Fatal(err)
	}
	eleven, err := WaveSpectrum(hqr.GenerateWaveSamples(hqr.ElevenD), hqr.FieldHiddenOrder)
	if err != nil {
		t.Fatal(err)
	}
	f4, _ := four.Peak()
	f11, _ := eleven.Peak()
	if f11 <= f4 {
		t.Errorf("11D peak %v should exceed 4D peak %v", f11, f4)
	}
}

func TestWaveSpectrumErrors(t *testing.T) {
	if _, err := WaveSpectrum(nil, hqr.FieldR); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
	if _, err := WaveSpectrum(hqr.GenerateWaveSamples(hqr.FourD), "phase"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestWaveMoments(t *testing.T) {
	m := WaveMoments(hqr.GenerateWaveSamples(hqr.FourD))
	// ∫exp(-x²/2)dx = √(2π).
	if math.Abs(m.Norm-math.Sqrt(2*math.Pi)) > 1e-3 {
		t.Errorf("norm %v, want √(2π)", m.Norm)
	}
	if math.Abs(m.MeanX) > 1e-9 {
		t.Errorf("mean %v, want 0", m.MeanX)
	}
	if math.Abs(m.Spread-1) > 1e-3 {
		t.Errorf("spread %v, want 1", m.Spread)
	}
	if math.Abs(m.PeakX) > 1e-9 {
		t.Errorf("peak at %v, want 0", m.PeakX)
	}
	if m.MaxSpeed <= 0 {
		t.Error("expected positive max speed")
	}
	if (WaveMoments(nil) != Moments{}) {
		t.Error("expected zero moments for no samples")
	}
}
