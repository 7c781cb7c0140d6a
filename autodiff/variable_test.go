package autodiff

import (
	"math"
	"testing"
)

func approxEqual(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

// testcase mirrors the table-driven style used to test infergo's tape:
// a labelled function of x/y/z and the expected value plus gradient.
type testcase struct {
	name string
	f    func(tape *Tape) (z Variable, vars []Variable)
	want float64
	grad []float64
	tol  float64
}

func runCases(t *testing.T, cases []testcase) {
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tape := NewTape()
			z, vars := c.f(tape)
			if !approxEqual(z.Value, c.want, c.tol) {
				t.Errorf("value: got %v, want %v", z.Value, c.want)
			}
			g := z.Accumulate()
			got := g.WrtSlice(vars)
			for i := range c.grad {
				if !approxEqual(got[i], c.grad[i], c.tol) {
					t.Errorf("d/d%d: got %v, want %v", i, got[i], c.grad[i])
				}
			}
		})
	}
}

// Invariant 1: constant function has zero gradient.
func TestConstantHasZeroGradient(t *testing.T) {
	tape := NewTape()
	x := tape.Var(5.)
	c := tape.Var(3.) // leaf standing in for a promoted constant
	g := c.Accumulate()
	if got := g.Wrt(x); got != 0 {
		t.Errorf("d(const)/dx: got %v, want 0", got)
	}
}

// Invariant 2: linearity.
func TestLinearity(t *testing.T) {
	runCases(t, []testcase{
		{"alpha*x+beta*y", func(tape *Tape) (Variable, []Variable) {
			x, y := tape.Var(2.), tape.Var(3.)
			z := x.MulC(5).Add(y.MulC(-2))
			return z, []Variable{x, y}
		}, 5*2 - 2*3, []float64{5, -2}, 1e-12},
	})
}

// Invariant 3: product rule.
func TestProductRule(t *testing.T) {
	runCases(t, []testcase{
		{"x*y", func(tape *Tape) (Variable, []Variable) {
			x, y := tape.Var(4.), tape.Var(7.)
			return x.Mul(y), []Variable{x, y}
		}, 28, []float64{7, 4}, 1e-12},
	})
}

// Invariant 4: quotient rule.
func TestQuotientRule(t *testing.T) {
	x0, y0 := 4.0, 7.0
	runCases(t, []testcase{
		{"x/y", func(tape *Tape) (Variable, []Variable) {
			x, y := tape.Var(x0), tape.Var(y0)
			return x.Div(y), []Variable{x, y}
		}, x0 / y0, []float64{1 / y0, -x0 / (y0 * y0)}, 1e-12},
	})
}

// Invariant 5: chain rule through a trig function.
func TestChainRuleTrig(t *testing.T) {
	x0, y0 := 0.3, 1.7
	runCases(t, []testcase{
		{"sin(x*y)", func(tape *Tape) (Variable, []Variable) {
			x, y := tape.Var(x0), tape.Var(y0)
			return x.Mul(y).Sin(), []Variable{x, y}
		}, math.Sin(x0 * y0), []float64{
			y0 * math.Cos(x0*y0), x0 * math.Cos(x0*y0),
		}, 1e-9},
	})
}

// Invariant 6: duplicate-use aliasing.
func TestDuplicateUseAliasing(t *testing.T) {
	runCases(t, []testcase{
		{"x+x", func(tape *Tape) (Variable, []Variable) {
			x := tape.Var(2.)
			return x.Add(x), []Variable{x}
		}, 4, []float64{2}, 1e-12},
	})
}

// S5: three-way aliasing.
func TestTripleAliasing(t *testing.T) {
	runCases(t, []testcase{
		{"x+x+x", func(tape *Tape) (Variable, []Variable) {
			x := tape.Var(2.)
			return x.Add(x).Add(x), []Variable{x}
		}, 6, []float64{3}, 1e-12},
	})
}

// S6: a leaf's gradient with respect to itself is 1, even on an
// otherwise empty tape.
func TestLeafGradientWrtSelf(t *testing.T) {
	tape := NewTape()
	x := tape.Var(42.)
	g := x.Accumulate()
	if got := g.Wrt(x); got != 1 {
		t.Errorf("d(x)/dx: got %v, want 1", got)
	}
}

// S1.
func TestScenarioXYSin(t *testing.T) {
	x0, y0 := 69.0, 420.0
	runCases(t, []testcase{
		{"x*y+sin(x)", func(tape *Tape) (Variable, []Variable) {
			x, y := tape.Var(x0), tape.Var(y0)
			return x.Mul(y).Add(x.Sin()), []Variable{x, y}
		}, x0*y0 + math.Sin(x0), []float64{
			y0 + math.Cos(x0), x0,
		}, 1e-9},
	})
}

// S2.
func TestScenarioExpSinTan(t *testing.T) {
	x0, y0 := 69.0, 420.0
	tape := NewTape()
	x, y := tape.Var(x0), tape.Var(y0)
	f := x.Sin().Add(y.Tan()).Exp()
	g := f.Accumulate()

	sec2y := 1 / (math.Cos(y0) * math.Cos(y0))
	wantDx := math.Cos(x0) * f.Value
	wantDy := sec2y * f.Value
	if got := g.Wrt(x); !approxEqual(got, wantDx, 1e-6) {
		t.Errorf("df/dx: got %v, want %v", got, wantDx)
	}
	if got := g.Wrt(y); !approxEqual(got, wantDy, 1e-6) {
		t.Errorf("df/dy: got %v, want %v", got, wantDy)
	}
}

// S3: finite-difference agreement.
func TestScenarioFiniteDifference(t *testing.T) {
	f := func(x, y float64) float64 {
		return math.Cosh(x*y) / (math.Tanh(x) * math.Sinh(y))
	}

	tape := NewTape()
	x, y := tape.Var(1.), tape.Var(2.)
	z := x.Mul(y).Cosh().Div(x.Tanh().Mul(y.Sinh()))
	g := z.Accumulate()

	h := 1e-6
	dxFD := (f(1+h, 2) - f(1-h, 2)) / (2 * h)
	dyFD := (f(1, 2+h) - f(1, 2-h)) / (2 * h)

	if got := g.Wrt(x); !approxEqual(got, dxFD, 1e-4) {
		t.Errorf("dz/dx: got %v, want ~%v (finite difference)", got, dxFD)
	}
	if got := g.Wrt(y); !approxEqual(got, dyFD, 1e-4) {
		t.Errorf("dz/dy: got %v, want ~%v (finite difference)", got, dyFD)
	}
}

// S4.
func TestScenarioMultiVariable(t *testing.T) {
	tape := NewTape()
	vars := tape.Vars([]float64{3., 2., 1.})
	x, y, z := vars[0], vars[1], vars[2]
	constants := []float64{1., 2.}

	f := x.Pow(y).AddC(math.Sin(constants[0])).Sub(z.Asinh().DivC(constants[1]))
	g := f.Accumulate()
	got := g.WrtSlice(vars)

	want := []float64{
		2 * math.Pow(3, 1),       // y * x^(y-1) = 2*3^1 = 6
		math.Pow(3, 2) * math.Log(3), // x^y * ln(x) = 9*ln(3)
		-1 / (2 * math.Sqrt(2)),  // -1/(2*sqrt(1+z^2))
	}
	for i := range want {
		if !approxEqual(got[i], want[i], 1e-9) {
			t.Errorf("d/d%d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGradientViewIndexBeyondAccumulationIsZero(t *testing.T) {
	tape := NewTape()
	x := tape.Var(1.)
	g := x.Accumulate()
	y := tape.Var(2.) // minted after accumulation
	if got := g.Wrt(y); got != 0 {
		t.Errorf("gradient w.r.t. a post-accumulation variable: got %v, want 0", got)
	}
}

func TestGradientViewMixedTapePanics(t *testing.T) {
	t1, t2 := NewTape(), NewTape()
	x := t1.Var(1.)
	g := x.Accumulate()
	y := t2.Var(2.)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic querying a GradientView with a foreign Variable")
		}
	}()
	g.Wrt(y)
}

func TestCustomElemental(t *testing.T) {
	tape := NewTape()
	x := tape.Var(2.)
	cube := x.Elemental1(
		func(a float64) float64 { return a * a * a },
		func(a float64) float64 { return 3 * a * a },
	)
	if !approxEqual(cube.Value, 8, 1e-12) {
		t.Fatalf("value: got %v, want 8", cube.Value)
	}
	g := cube.Accumulate()
	if got := g.Wrt(x); !approxEqual(got, 12, 1e-12) {
		t.Errorf("d(x^3)/dx: got %v, want 12", got)
	}
}
