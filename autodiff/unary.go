package autodiff

import "math"

// Neg returns -v.
func (v Variable) Neg() Variable {
	i := v.tape.pushUnary(v.index, -1)
	return Variable{tape: v.tape, index: i, Value: -v.Value}
}

// Abs returns |v|. The partial is sign(v); it is undefined at v == 0,
// where this implementation records 0.
func (v Variable) Abs() Variable {
	d := 1.0
	if v.Value < 0 {
		d = -1.0
	} else if v.Value == 0 {
		d = 0.0
	}
	i := v.tape.pushUnary(v.index, d)
	return Variable{tape: v.tape, index: i, Value: math.Abs(v.Value)}
}

// Recip returns 1/v.
func (v Variable) Recip() Variable {
	d := -1 / (v.Value * v.Value)
	i := v.tape.pushUnary(v.index, d)
	return Variable{tape: v.tape, index: i, Value: 1 / v.Value}
}

// Exp returns e^v.
func (v Variable) Exp() Variable {
	val := math.Exp(v.Value)
	i := v.tape.pushUnary(v.index, val)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Ln returns the natural logarithm of v.
func (v Variable) Ln() Variable {
	i := v.tape.pushUnary(v.index, 1/v.Value)
	return Variable{tape: v.tape, index: i, Value: math.Log(v.Value)}
}

// Sqrt returns the square root of v.
func (v Variable) Sqrt() Variable {
	val := math.Sqrt(v.Value)
	i := v.tape.pushUnary(v.index, 0.5/val)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Powi returns v raised to the integer power n.
func (v Variable) Powi(n int) Variable {
	val := math.Pow(v.Value, float64(n))
	d := float64(n) * math.Pow(v.Value, float64(n-1))
	i := v.tape.pushUnary(v.index, d)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Powf returns v raised to the constant power p.
func (v Variable) Powf(p float64) Variable {
	val := math.Pow(v.Value, p)
	d := p * math.Pow(v.Value, p-1)
	i := v.tape.pushUnary(v.index, d)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Pow returns v raised to the Variable power p, with both operands
// contributing to the gradient: d/dv = p*v^(p-1), d/dp = v^p*ln(v).
func (v Variable) Pow(p Variable) Variable {
	sameTape(v, p, "Pow")
	val := math.Pow(v.Value, p.Value)
	d0 := p.Value * math.Pow(v.Value, p.Value-1)
	d1 := val * math.Log(v.Value)
	i := v.tape.pushBinary(v.index, d0, p.index, d1)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Trigonometric.

// Sin returns sin(v).
func (v Variable) Sin() Variable {
	i := v.tape.pushUnary(v.index, math.Cos(v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Sin(v.Value)}
}

// Cos returns cos(v).
func (v Variable) Cos() Variable {
	i := v.tape.pushUnary(v.index, -math.Sin(v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Cos(v.Value)}
}

// Tan returns tan(v).
func (v Variable) Tan() Variable {
	c := math.Cos(v.Value)
	i := v.tape.pushUnary(v.index, 1/(c*c))
	return Variable{tape: v.tape, index: i, Value: math.Tan(v.Value)}
}

// Asin returns arcsin(v).
func (v Variable) Asin() Variable {
	i := v.tape.pushUnary(v.index, 1/math.Sqrt(1-v.Value*v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Asin(v.Value)}
}

// Acos returns arccos(v).
func (v Variable) Acos() Variable {
	i := v.tape.pushUnary(v.index, -1/math.Sqrt(1-v.Value*v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Acos(v.Value)}
}

// Atan returns arctan(v).
func (v Variable) Atan() Variable {
	i := v.tape.pushUnary(v.index, 1/(1+v.Value*v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Atan(v.Value)}
}

// Hyperbolic.

// Sinh returns sinh(v).
func (v Variable) Sinh() Variable {
	i := v.tape.pushUnary(v.index, math.Cosh(v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Sinh(v.Value)}
}

// Cosh returns cosh(v).
func (v Variable) Cosh() Variable {
	i := v.tape.pushUnary(v.index, math.Sinh(v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Cosh(v.Value)}
}

// Tanh returns tanh(v).
func (v Variable) Tanh() Variable {
	val := math.Tanh(v.Value)
	i := v.tape.pushUnary(v.index, 1-val*val)
	return Variable{tape: v.tape, index: i, Value: val}
}

// Asinh returns the inverse hyperbolic sine of v.
func (v Variable) Asinh() Variable {
	i := v.tape.pushUnary(v.index, 1/math.Sqrt(v.Value*v.Value+1))
	return Variable{tape: v.tape, index: i, Value: math.Asinh(v.Value)}
}

// Acosh returns the inverse hyperbolic cosine of v.
func (v Variable) Acosh() Variable {
	i := v.tape.pushUnary(v.index, 1/math.Sqrt(v.Value*v.Value-1))
	return Variable{tape: v.tape, index: i, Value: math.Acosh(v.Value)}
}

// Atanh returns the inverse hyperbolic tangent of v.
func (v Variable) Atanh() Variable {
	i := v.tape.pushUnary(v.index, 1/(1-v.Value*v.Value))
	return Variable{tape: v.tape, index: i, Value: math.Atanh(v.Value)}
}
