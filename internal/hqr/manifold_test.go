package hqr

import (
	"math"
	"testing"
)

func TestManifoldSamples(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			s := GenerateManifoldSamples(mode)
			if len(s) != ManifoldSamples || len(s) != 441 {
				t.Fatalf("got %d samples", len(s))
			}
			for i, p := range s {
				if p.Value < 0 || p.Value > 1 {
					t.Errorf("sample %d value %v outside [0,1]", i, p.Value)
				}
			}
			last := s[len(s)-1]
			if math.Abs(last.U-2*math.Pi) > tol || math.Abs(last.V-math.Pi) > tol {
				t.Errorf("last (u, v) = (%v, %v)", last.U, last.V)
			}
			// v varies fastest.
			if s[1].U != 0 || s[1].V == 0 {
				t.Errorf("second sample (u, v) = (%v, %v)", s[1].U, s[1].V)
			}
		})
	}
}

func TestManifoldProjection(t *testing.T) {
	tests := []struct {
		mode    DimensionMode
		u, v    float64
		x, y, z float64
	}{
		{FourD, math.Pi / 2, math.Pi / 2, 1, 0, 0},
		{FourD, 0, 0, 0, 0, 1},
		{ElevenD, 0, 0, 0, 0.3, 1},
		{ElevenD, math.Pi / 2, math.Pi / 2, 1 - 0.3, -0.3, 0.2},
	}
	for _, tt := range tests {
		x, y, z := project(tt.mode, tt.u, tt.v)
		if math.Abs(x-tt.x) > tol || math.Abs(y-tt.y) > tol || math.Abs(z-tt.z) > tol {
			t.Errorf("project(%s, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.mode, tt.u, tt.v, x, y, z, tt.x, tt.y, tt.z)
		}
	}
}

func TestManifoldScaling(t *testing.T) {
	s := GenerateManifoldSamples(FourD)
	minP, maxP := Bounds(s)
	if maxP[0] > ManifoldXYScale+tol || minP[0] < -ManifoldXYScale-tol {
		t.Errorf("x bounds %v..%v", minP[0], maxP[0])
	}
	if math.Abs(maxP[2]-ManifoldZScale) > tol || math.Abs(minP[2]+ManifoldZScale) > tol {
		t.Errorf("z bounds %v..%v, want ±%v", minP[2], maxP[2], ManifoldZScale)
	}
}
