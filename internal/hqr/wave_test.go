package hqr

import (
	"math"
	"reflect"
	"testing"
)

const tol = 1e-9

func TestWaveSampleGrid(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			s := GenerateWaveSamples(mode)
			if len(s) != WaveSamples {
				t.Fatalf("got %d samples, want %d", len(s), WaveSamples)
			}
			if s[0].X != -10 || s[len(s)-1].X != 10 {
				t.Errorf("x range = [%v, %v], want [-10, 10]", s[0].X, s[len(s)-1].X)
			}
			for i := 1; i < len(s); i++ {
				if d := s[i].X - s[i-1].X; math.Abs(d-WaveStep) > tol {
					t.Fatalf("step %d = %v", i, d)
				}
			}
		})
	}
}

func TestWaveProbabilityIdentity(t *testing.T) {
	for _, mode := range Modes {
		for i, s := range GenerateWaveSamples(mode) {
			if d := s.Probability - (s.RealPart*s.RealPart + s.ImagPart*s.ImagPart); math.Abs(d) > tol {
				t.Errorf("%s sample %d: probability off by %g", mode, i, d)
			}
			if math.Abs(s.Probability-s.R*s.R) > tol {
				t.Errorf("%s sample %d: probability != r²", mode, i)
			}
		}
	}
}

func TestWaveScenarios(t *testing.T) {
	s := GenerateWaveSamples(FourD)

	first := s[0]
	if first.X != -10 {
		t.Errorf("x = %v", first.X)
	}
	if want := math.Exp(-25); math.Abs(first.R-want) > 1e-20 {
		t.Errorf("r = %g, want %g", first.R, want)
	}
	if math.Abs(first.S-50) > tol {
		t.Errorf("s = %v, want 50", first.S)
	}
	if math.Abs(first.RealPart-first.R*math.Cos(50)) > tol {
		t.Errorf("realPart = %v", first.RealPart)
	}
	if math.Abs(first.GradS-50/WaveStep) > tol {
		t.Errorf("first gradS = %v, want difference against 0", first.GradS)
	}

	mid := s[50]
	if math.Abs(mid.X) > tol || math.Abs(mid.R-1) > tol || math.Abs(mid.S) > tol {
		t.Errorf("mid sample = %+v", mid)
	}
	if math.Abs(mid.RealPart-1) > tol || math.Abs(mid.ImagPart) > tol {
		t.Errorf("mid Ψ = %v + %vi", mid.RealPart, mid.ImagPart)
	}
}

func TestWaveComplexity(t *testing.T) {
	four, eleven := GenerateWaveSamples(FourD), GenerateWaveSamples(ElevenD)
	for i := range four {
		if math.Abs(eleven[i].S-2.5*four[i].S) > tol {
			t.Fatalf("sample %d: 11D phase %v, 4D %v", i, eleven[i].S, four[i].S)
		}
		if four[i].Velocity != four[i].GradS/Mass {
			t.Fatalf("sample %d: velocity", i)
		}
	}
}

func TestModeSwitchIsIdempotent(t *testing.T) {
	before := Generate(FourD)
	_ = Generate(ElevenD)
	after := Generate(FourD)
	if !reflect.DeepEqual(before, after) {
		t.Error("4D frame changed after generating 11D")
	}
}

func TestColumn(t *testing.T) {
	s := GenerateWaveSamples(FourD)
	for _, f := range WaveFields {
		col, ok := Column(s, f)
		if !ok || len(col) != len(s) {
			t.Fatalf("column %s: ok=%v len=%d", f, ok, len(col))
		}
	}
	if _, ok := Column(s, "phase"); ok {
		t.Error("unknown field accepted")
	}
	if xs := Xs(s); xs[50] != s[50].X {
		t.Error("Xs out of order")
	}
}
