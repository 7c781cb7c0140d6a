// Package options implements closed-form option pricers generic over
// autodiff.Numeric, so the same formula prices with plain numbers and
// differentiates (for Greeks) when compiled against autodiff.Variable.
package options

import (
	"fmt"

	"github.com/quantkit/quantad/autodiff"
	"github.com/quantkit/quantad/quant/normal"
)

// BarrierType selects one of the eight knock-in/knock-out barrier option
// variants priced by BarrierOptionClosedForm.
type BarrierType string

// The eight supported barrier option variants.
const (
	DownInCall  BarrierType = "cdi"
	UpInCall    BarrierType = "cui"
	DownInPut   BarrierType = "pdi"
	UpInPut     BarrierType = "pui"
	DownOutCall BarrierType = "cdo"
	UpOutCall   BarrierType = "cuo"
	DownOutPut  BarrierType = "pdo"
	UpOutPut    BarrierType = "puo"
)

// BarrierOptionClosedForm prices a path-dependent barrier option,
// adapted from Haug's Complete Guide to Option Pricing Formulas.
//
// Arguments:
//   - S: initial underlying price
//   - X: strike price
//   - H: barrier
//   - t: time to expiry
//   - r: risk-free rate
//   - v: volatility
//   - K: rebate, paid if the option cannot be exercised
//   - q: dividend yield (b = r - q is the cost of carry)
//   - typeFlag: one of the BarrierType constants
//
// It panics if the barrier has already been touched for the requested
// variant (e.g. a down-and-in priced with S already below H), matching
// the reference implementation's behavior.
func BarrierOptionClosedForm[T autodiff.Numeric[T]](
	S, X, H, t, r, v, K, q T,
	typeFlag BarrierType,
) T {
	b := r.Sub(q)

	sqrtT := t.Sqrt()

	mu := b.Sub(v.Mul(v).DivC(2)).Div(v.Mul(v))
	lambda := mu.Mul(mu).Add(r.MulC(2).Div(v.Mul(v))).Sqrt()
	z := H.Div(S).Ln().Div(v.Mul(sqrtT)).Add(lambda.Mul(v).Mul(sqrtT))

	x1 := S.Div(X).Ln().Div(v).Mul(sqrtT).Add(mu.AddC(1).Mul(v).Mul(sqrtT))
	x2 := S.Div(H).Ln().Div(v).Mul(sqrtT).Add(mu.AddC(1).Mul(v).Mul(sqrtT))

	y1 := H.Mul(H).Div(S.Mul(X)).Ln().Div(v.Mul(sqrtT)).Add(mu.AddC(1).Mul(v).Mul(sqrtT))
	y2 := H.Div(S).Ln().Div(v.Mul(sqrtT)).Add(mu.AddC(1).Mul(v).Mul(sqrtT))

	HoverS := H.Div(S)
	twoMu := mu.MulC(2)
	twoMuPlusTwo := mu.AddC(1).MulC(2)

	A := func(phi float64) T {
		term1 := S.MulC(phi).Mul(b.Sub(r).Mul(t).Exp()).Mul(normal.CDF(x1.MulC(phi)))
		term2 := X.MulC(phi).Mul(r.Neg().Mul(t).Exp()).
			Mul(normal.CDF(x1.MulC(phi).Sub(v.MulC(phi).Mul(sqrtT))))
		return term1.Sub(term2)
	}

	B := func(phi float64) T {
		term1 := S.MulC(phi).Mul(b.Sub(r).Mul(t).Exp()).Mul(normal.CDF(x2.MulC(phi)))
		term2 := X.MulC(phi).Mul(r.Neg().Mul(t).Exp()).
			Mul(normal.CDF(x2.MulC(phi).Sub(v.MulC(phi).Mul(sqrtT))))
		return term1.Sub(term2)
	}

	C := func(phi, eta float64) T {
		term1 := S.MulC(phi).Mul(b.Sub(r).Mul(t).Exp()).Mul(HoverS.Pow(twoMuPlusTwo)).
			Mul(normal.CDF(y1.MulC(eta)))
		term2 := X.MulC(phi).Mul(r.Neg().Mul(t).Exp()).Mul(HoverS.Pow(twoMu)).
			Mul(normal.CDF(y1.MulC(eta).Sub(v.MulC(eta).Mul(sqrtT))))
		return term1.Sub(term2)
	}

	D := func(phi, eta float64) T {
		term1 := S.MulC(phi).Mul(b.Sub(r).Mul(t).Exp()).Mul(HoverS.Pow(twoMuPlusTwo)).
			Mul(normal.CDF(y2.MulC(eta)))
		term2 := X.MulC(phi).Mul(r.Neg().Mul(t).Exp()).Mul(HoverS.Pow(twoMu)).
			Mul(normal.CDF(y2.MulC(eta).Sub(v.MulC(eta).Mul(sqrtT))))
		return term1.Sub(term2)
	}

	E := func(eta float64) T {
		term1 := normal.CDF(x2.MulC(eta).Sub(v.MulC(eta).Mul(sqrtT)))
		term2 := HoverS.Pow(twoMu).Mul(normal.CDF(y2.MulC(eta).Sub(v.MulC(eta).Mul(sqrtT))))
		return K.Mul(r.Neg().Mul(t).Exp()).Mul(term1.Sub(term2))
	}

	F := func(eta float64) T {
		term1 := HoverS.Pow(mu.Add(lambda)).Mul(normal.CDF(z.MulC(eta)))
		term2 := HoverS.Pow(mu.Sub(lambda)).
			Mul(normal.CDF(z.MulC(eta).Sub(lambda.MulC(2 * eta).Mul(v).Mul(sqrtT))))
		return K.Mul(term1.Add(term2))
	}

	sf, hf := S.Float(), H.Float()

	if X.Float() >= H.Float() {
		switch {
		case typeFlag == DownInCall && sf >= hf:
			return C(1, 1).Add(E(1))
		case typeFlag == UpInCall && sf <= hf:
			return A(1).Add(E(-1))
		case typeFlag == DownInPut && sf >= hf:
			return B(-1).Sub(C(-1, 1)).Add(D(-1, 1)).Add(E(1))
		case typeFlag == UpInPut && sf <= hf:
			return A(-1).Sub(B(-1)).Add(D(-1, -1)).Add(E(-1))
		case typeFlag == DownOutCall && sf >= hf:
			return A(1).Sub(C(1, 1)).Add(F(1))
		case typeFlag == UpOutCall && sf <= hf:
			return F(-1)
		case typeFlag == DownOutPut && sf >= hf:
			return A(-1).Sub(B(-1)).Add(C(-1, 1)).Sub(D(-1, 1)).Add(F(1))
		case typeFlag == UpOutPut && sf <= hf:
			return B(-1).Sub(D(-1, -1)).Add(F(-1))
		default:
			panic(fmt.Sprintf("options: barrier touched - check barrier and type flag %q", typeFlag))
		}
	}

	switch {
	case typeFlag == DownInCall && sf >= hf:
		return A(1).Sub(B(1)).Add(D(1, 1)).Add(E(1))
	case typeFlag == UpInCall && sf <= hf:
		return B(1).Sub(C(1, -1)).Add(D(1, -1)).Add(E(-1))
	case typeFlag == DownInPut && sf >= hf:
		return A(-1).Add(E(1))
	case typeFlag == UpInPut && sf <= hf:
		return C(-1, -1).Add(E(-1))
	case typeFlag == DownOutCall && sf >= hf:
		return B(1).Sub(D(1, 1)).Add(F(1))
	case typeFlag == UpOutCall && sf <= hf:
		return A(1).Sub(B(1)).Add(C(1, -1)).Sub(D(1, -1)).Add(F(-1))
	case typeFlag == DownOutPut && sf >= hf:
		return F(1)
	case typeFlag == UpOutPut && sf <= hf:
		return A(-1).Sub(C(-1, -1)).Add(F(-1))
	default:
		panic(fmt.Sprintf("options: barrier touched - check barrier and type flag %q", typeFlag))
	}
}
