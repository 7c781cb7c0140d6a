package autodiff

// GradientView is a read-only façade over the adjoint vector produced by
// Accumulate, translating Variable handles into adjoint lookups.
type GradientView struct {
	tape     *Tape
	adjoints []float64
}

func (g GradientView) adjointOf(v Variable) float64 {
	if v.tape != g.tape {
		panic("autodiff: GradientView.Wrt: variable bound to a different tape")
	}
	// A Variable minted after Accumulate returned cannot have
	// influenced the accumulated terminal value: its gradient is 0,
	// not an error.
	if v.index >= len(g.adjoints) {
		return 0
	}
	return g.adjoints[v.index]
}

// Wrt returns the partial derivative of the accumulated terminal value
// with respect to v.
func (g GradientView) Wrt(v Variable) float64 {
	return g.adjointOf(v)
}

// WrtSlice returns the partial derivative with respect to each element of
// vs, preserving order.
func (g GradientView) WrtSlice(vs []Variable) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = g.adjointOf(v)
	}
	return out
}

// WrtSet returns the partial derivative with respect to each distinct
// Variable in vs, keyed by the Variable itself.
func (g GradientView) WrtSet(vs []Variable) map[Variable]float64 {
	out := make(map[Variable]float64, len(vs))
	for _, v := range vs {
		out[v] = g.adjointOf(v)
	}
	return out
}
