// Package volatility provides a maximum-likelihood model of a return
// series under an iid normal assumption, used to exercise the
// calibrate package end to end. It generalizes infergo's
// examples/mt normal-fitting example (mean/log-stddev of a data set)
// from a standalone demo into a reusable autodiff-based objective.
package volatility

import (
	"math"

	"github.com/quantkit/quantad/autodiff"
)

var halfLog2Pi = 0.5 * math.Log(2*math.Pi)

// NormalLogLikelihood returns the log-likelihood of the observed return
// series data under an iid Normal(mu, sigma) model, parameterized as
// x = [mu, logSigma] so that sigma = exp(logSigma) stays positive
// throughout unconstrained gradient ascent.
func NormalLogLikelihood(tape *autodiff.Tape, x []autodiff.Variable, data []float64) autodiff.Variable {
	mu, logSigma := x[0], x[1]
	sigma := logSigma.Exp()

	ll := tape.Var(0)
	for _, d := range data {
		resid := autodiff.CSub(d, mu)
		z := resid.Div(sigma)
		term := z.Mul(z).MulC(0.5).AddC(halfLog2Pi).Add(logSigma)
		ll = ll.Sub(term)
	}
	return ll
}

// SampleMoments returns the sample mean and (population) standard
// deviation of data, for comparison against a fitted model.
func SampleMoments(data []float64) (mean, stddev float64) {
	var s, s2 float64
	for _, x := range data {
		s += x
		s2 += x * x
	}
	n := float64(len(data))
	mean = s / n
	stddev = math.Sqrt(s2/n - mean*mean)
	return mean, stddev
}
