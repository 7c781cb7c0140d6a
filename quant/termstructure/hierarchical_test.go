package termstructure

import (
	"math"
	"testing"

	"github.com/quantkit/quantad/autodiff"
)

func TestLogJointDensityGradientMatchesFiniteDifference(t *testing.T) {
	tenors := Tenors{
		Vols:  []float64{0.18, 0.21, 0.19, 0.25},
		Sigma: []float64{0.02, 0.03, 0.02, 0.04},
	}

	x0 := []float64{0.2, -0.5, 0.1, -0.2, 0.3, 0.0}
	if len(x0) != tenors.NumParams() {
		t.Fatalf("test setup: len(x0)=%d, want %d", len(x0), tenors.NumParams())
	}

	eval := func(x []float64) float64 {
		tape := autodiff.NewTape()
		vars := tape.Vars(x)
		return tenors.LogJointDensity(tape, vars).Value
	}

	tape := autodiff.NewTape()
	vars := tape.Vars(x0)
	out := tenors.LogJointDensity(tape, vars)
	grad := out.Accumulate().WrtSlice(vars)

	h := 1e-6
	for j := range x0 {
		plus := append([]float64(nil), x0...)
		minus := append([]float64(nil), x0...)
		plus[j] += h
		minus[j] -= h
		fd := (eval(plus) - eval(minus)) / (2 * h)
		if math.Abs(grad[j]-fd) > 1e-4 {
			t.Errorf("param %d: got grad %v, want ~%v", j, grad[j], fd)
		}
	}
}

func TestNumParams(t *testing.T) {
	tenors := Tenors{Vols: []float64{0.1, 0.2, 0.3}, Sigma: []float64{0.01, 0.01, 0.01}}
	if got, want := tenors.NumParams(), 5; got != want {
		t.Errorf("NumParams() = %d, want %d", got, want)
	}
}
