package autodiff

import "fmt"

// Variable is a value-carrying handle bound to a slot on a Tape. It is a
// small value type: copying a Variable does not record anything onto its
// Tape. Only the arithmetic and transcendental methods below do that.
//
// Variable is comparable (usable as a map key and with ==) because all of
// its fields are comparable; two Variables are equal iff they share a
// Tape, index and value.
type Variable struct {
	tape  *Tape
	index int
	// Value is the forward-evaluated numeric result of whatever
	// operation produced this Variable.
	Value float64
}

// Var mints a leaf Variable carrying x.
func (t *Tape) Var(x float64) Variable {
	return Variable{tape: t, index: t.pushLeaf(), Value: x}
}

// Vars mints a leaf Variable for each element of xs, preserving order.
func (t *Tape) Vars(xs []float64) []Variable {
	vs := make([]Variable, len(xs))
	for i, x := range xs {
		vs[i] = t.Var(x)
	}
	return vs
}

// Tape returns the Tape this Variable is bound to.
func (v Variable) Tape() *Tape { return v.tape }

func sameTape(a, b Variable, op string) {
	if a.tape != b.tape {
		panic(fmt.Sprintf("autodiff: %s: operands bound to different tapes", op))
	}
}

// Binary arithmetic, Variable op Variable.

// Add returns v + other.
func (v Variable) Add(other Variable) Variable {
	sameTape(v, other, "Add")
	i := v.tape.pushBinary(v.index, 1, other.index, 1)
	return Variable{tape: v.tape, index: i, Value: v.Value + other.Value}
}

// Sub returns v - other.
func (v Variable) Sub(other Variable) Variable {
	sameTape(v, other, "Sub")
	i := v.tape.pushBinary(v.index, 1, other.index, -1)
	return Variable{tape: v.tape, index: i, Value: v.Value - other.Value}
}

// Mul returns v * other.
func (v Variable) Mul(other Variable) Variable {
	sameTape(v, other, "Mul")
	i := v.tape.pushBinary(v.index, other.Value, other.index, v.Value)
	return Variable{tape: v.tape, index: i, Value: v.Value * other.Value}
}

// Div returns v / other.
func (v Variable) Div(other Variable) Variable {
	sameTape(v, other, "Div")
	d0 := 1 / other.Value
	d1 := -v.Value / (other.Value * other.Value)
	i := v.tape.pushBinary(v.index, d0, other.index, d1)
	return Variable{tape: v.tape, index: i, Value: v.Value / other.Value}
}

// Binary arithmetic, Variable op real. The real operand never gets a
// Node; only the Variable operand contributes a parent.

// AddC returns v + c. It is also the correct form for c + v, since
// addition is commutative.
func (v Variable) AddC(c float64) Variable {
	i := v.tape.pushUnary(v.index, 1)
	return Variable{tape: v.tape, index: i, Value: v.Value + c}
}

// SubC returns v - c.
func (v Variable) SubC(c float64) Variable {
	i := v.tape.pushUnary(v.index, 1)
	return Variable{tape: v.tape, index: i, Value: v.Value - c}
}

// CSub returns c - v.
func CSub(c float64, v Variable) Variable {
	i := v.tape.pushUnary(v.index, -1)
	return Variable{tape: v.tape, index: i, Value: c - v.Value}
}

// MulC returns v * c. It is also the correct form for c * v, since
// multiplication is commutative.
func (v Variable) MulC(c float64) Variable {
	i := v.tape.pushUnary(v.index, c)
	return Variable{tape: v.tape, index: i, Value: v.Value * c}
}

// DivC returns v / c.
func (v Variable) DivC(c float64) Variable {
	i := v.tape.pushUnary(v.index, 1/c)
	return Variable{tape: v.tape, index: i, Value: v.Value / c}
}

// CDiv returns c / v.
func CDiv(c float64, v Variable) Variable {
	d := -c / (v.Value * v.Value)
	i := v.tape.pushUnary(v.index, d)
	return Variable{tape: v.tape, index: i, Value: c / v.Value}
}

// Elemental1 records a custom unary elemental operation: f is applied to
// v's value, and df supplies the local partial derivative evaluated at
// v's value. This is the handle-based analogue of infergo's
// RegisterElemental: rather than registering a gradient for a function
// pointer ahead of time, the derivative is supplied at the call site.
func (v Variable) Elemental1(f func(float64) float64, df func(float64) float64) Variable {
	i := v.tape.pushUnary(v.index, df(v.Value))
	return Variable{tape: v.tape, index: i, Value: f(v.Value)}
}

// Elemental2 records a custom binary elemental operation. dfa and dfb
// compute the partials with respect to the first and second operand,
// each evaluated at (v.Value, other.Value).
func (v Variable) Elemental2(
	other Variable,
	f func(a, b float64) float64,
	dfa, dfb func(a, b float64) float64,
) Variable {
	sameTape(v, other, "Elemental2")
	i := v.tape.pushBinary(v.index, dfa(v.Value, other.Value), other.index, dfb(v.Value, other.Value))
	return Variable{tape: v.tape, index: i, Value: f(v.Value, other.Value)}
}
