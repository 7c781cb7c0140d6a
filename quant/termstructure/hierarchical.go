// Package termstructure fits a partial-pooling model of a set of
// tenor-level implied volatilities around a shared level, generalizing
// infergo's eight-schools example (a hierarchical model of treatment
// effects across schools, from Gelman et al.'s "Bayesian Data
// Analysis") from Stan's domain to a term structure of volatilities.
package termstructure

import (
	"github.com/quantkit/quantad/autodiff"
)

// Tenors holds one quoted implied volatility (with its standard error)
// per point on the term structure, playing the role of eight-schools'
// per-school treatment effect estimate and standard error.
type Tenors struct {
	Vols  []float64
	Sigma []float64
}

// LogJointDensity evaluates the log joint density of the hierarchical
// model parameterized as x = [mu, logTau, eta_0, ..., eta_{n-1}]:
//
//	theta_i = mu + tau*eta_i      (tenor i's modeled volatility level)
//	eta_i   ~ Normal(0, 1)        (non-centered reparameterization)
//	vol_i   ~ Normal(theta_i, sigma_i)
//
// mu is the shared volatility level, tau the cross-tenor dispersion
// around it, and eta_i the standardized per-tenor deviation; the
// non-centered eta parameterization keeps tau's gradient well behaved
// near zero, the same reason infergo's model uses it.
func (t Tenors) LogJointDensity(tape *autodiff.Tape, x []autodiff.Variable) autodiff.Variable {
	mu, logTau := x[0], x[1]
	eta := x[2:]
	tau := logTau.Exp()

	ll := tape.Var(0)
	for i := range t.Vols {
		theta := mu.Add(tau.Mul(eta[i]))
		resid := autodiff.CSub(t.Vols[i], theta)
		sigma2 := t.Sigma[i] * t.Sigma[i]
		ll = ll.Sub(resid.Mul(resid).DivC(2 * sigma2))

		etaPrior := eta[i].Mul(eta[i]).MulC(0.5)
		ll = ll.Sub(etaPrior)
	}
	return ll
}

// NumParams returns the parameter vector length (mu, logTau, one eta
// per tenor) for t.
func (t Tenors) NumParams() int {
	return 2 + len(t.Vols)
}
