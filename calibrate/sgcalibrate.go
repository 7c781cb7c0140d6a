// Package calibrate fits the parameters of a quantitative model by
// stochastic-gradient ascent on a scalar objective (typically a
// log-likelihood), using autodiff for the gradient instead of a global
// tape.
//
// The concurrency shape — a goroutine streaming parameter vectors over a
// channel, stoppable from the caller, with a recover-based guard so a
// panic deep in the objective is reported rather than crashing the whole
// program — is carried over from infergo's infer.SgHMC sampler.
package calibrate

import (
	"log"
	"math"
	"math/rand"

	"github.com/quantkit/quantad/autodiff"
)

// Objective evaluates a scalar objective (e.g. a log-likelihood) at the
// parameter values in x, which have been minted as Variables on tape.
// Implementations build their expression purely out of the Variable
// methods in package autodiff; they must not retain x or tape beyond the
// call.
type Objective func(tape *autodiff.Tape, x []autodiff.Variable) autodiff.Variable

// sampler holds the bookkeeping shared by this package's gradient-based
// optimizers: the output channel, a cooperative stop flag, and
// acceptance counters in the spirit of infergo's embedded sampler type.
type sampler struct {
	samples chan []float64
	stop    bool
	NAcc    int
	NRej    int
}

// Stop requests that the running Calibrate goroutine finish once its
// current sample has been emitted and close its samples channel.
func (s *sampler) Stop() { s.stop = true }

// SgCalibrator performs stochastic-gradient ascent with momentum and
// injected noise, the same update rule as infergo's SgHMC, generalized
// from posterior sampling to point calibration.
type SgCalibrator struct {
	sampler

	// L is the number of gradient steps taken between emitted samples.
	L int
	// Eta is the learning rate.
	Eta float64
	// Alpha is the friction (1 - momentum).
	Alpha float64
	// V is the diffusion (injected noise variance control).
	V float64
}

// setDefaults fills in zero-valued tuning parameters, mirroring
// infergo's SgHMC.setDefaults.
func (c *SgCalibrator) setDefaults() {
	if c.L == 0 {
		c.L = 10
	}
	if c.Eta == 0 {
		c.Eta = 0.01
	}
	if c.Alpha == 0 {
		c.Alpha = 0.1
	}
}

// Calibrate runs stochastic-gradient ascent on obj starting from x
// (mutated in place) and streams a copy of x onto samples every L steps,
// until Stop is called. It starts its own goroutine and returns
// immediately; that goroutine closes samples on exit.
func (c *SgCalibrator) Calibrate(obj Objective, x []float64, samples chan []float64) {
	c.setDefaults()
	c.samples = samples
	go func() {
		defer close(samples)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("ERROR: SgCalibrator: %v", r)
			}
		}()

		beta := math.Min(0.5*c.Eta*c.V, c.Alpha)
		sigma := math.Sqrt(2 * c.Eta * (c.Alpha - beta))

		momentum := make([]float64, len(x))
		for {
			if c.stop {
				break
			}
			for istep := 0; istep != c.L; istep++ {
				grad := gradientAt(obj, x)
				for j := range momentum {
					momentum[j] += c.Eta*grad[j] - c.Alpha*momentum[j] +
						rand.NormFloat64()*sigma
					x[j] += momentum[j]
				}
			}
			c.NAcc++
			samples <- append([]float64(nil), x...)
		}
	}()
}

// gradientAt evaluates obj and its gradient with respect to x on the
// calling goroutine's scoped tape (autodiff.CurrentTape), dropping it
// again before returning so the next step starts from a fresh tape
// instead of growing the same one for the life of the goroutine. This
// mirrors infergo's SgHMC.Sample, which defers ad.DropTape() on exit
// from its sampling goroutine; here the drop happens every step since
// each step needs its own tape rather than one shared across the run.
func gradientAt(obj Objective, x []float64) []float64 {
	defer autodiff.DropTape()
	tape := autodiff.CurrentTape()
	vars := tape.Vars(x)
	out := obj(tape, vars)
	grad := out.Accumulate()
	return grad.WrtSlice(vars)
}
