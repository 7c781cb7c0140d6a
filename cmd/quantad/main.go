// Command quantad is a walkthrough of this module's autodiff engine and
// the quant package built on top of it: the same progression of simple
// expressions, block expressions, closures and multi-variable functions
// as RustQuant's automatic_differentiation.rs example, followed by a
// barrier option price and a stochastic-gradient calibration of a
// normal model against a data set.
//
// Flag handling and the CSV/embedded-data-set switch are carried over
// from infergo's examples/mt/main.go.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/quantkit/quantad/autodiff"
	"github.com/quantkit/quantad/calibrate"
	"github.com/quantkit/quantad/quant/options"
	"github.com/quantkit/quantad/quant/volatility"
)

var (
	RATE  = 0.05
	ALPHA = 0.3
	L     = 10
	NITER = 200
)

func init() {
	rand.Seed(time.Now().UTC().UnixNano())
	flag.Usage = func() {
		log.Printf(`Autodiff walkthrough and normal-model calibration:
	quantad [OPTIONS] [data.csv]` + "\n")
		flag.PrintDefaults()
	}
	flag.Float64Var(&RATE, "rate", RATE, "calibration learning rate")
	flag.Float64Var(&ALPHA, "alpha", ALPHA, "calibration friction")
	flag.IntVar(&L, "l", L, "gradient steps between emitted samples")
	flag.IntVar(&NITER, "niter", NITER, "number of emitted samples to run")
	log.SetFlags(0)
}

func main() {
	flag.Parse()
	if flag.NArg() > 1 {
		log.Fatalf("unexpected positional arguments: %v", flag.Args()[1:])
	}

	simpleExpressions()
	blockExpressions()
	closures()
	multiVariableFunction()
	barrierOption()
	calibrateNormalModel(loadData())
}

// simpleExpressions mirrors automatic_differentiation.rs's first block:
// z = x*y + sin(x), differentiated at x=69, y=420.
func simpleExpressions() {
	tape := autodiff.NewTape()
	x := tape.Var(69)
	y := tape.Var(420)

	z := x.Mul(y).Add(x.Sin())
	grad := z.Accumulate()

	log.Printf("simple expression: z = %v", z.Value)
	log.Printf("  dz/dx = %v", grad.Wrt(x))
	log.Printf("  dz/dy = %v", grad.Wrt(y))
	log.Printf("  grad  = %v", grad.WrtSlice([]autodiff.Variable{x, y}))
}

// blockExpressions mirrors the "block expressions" section: a value
// built up across a sequence of statements before being accumulated.
func blockExpressions() {
	tape := autodiff.NewTape()
	x := tape.Var(69)
	y := tape.Var(420)

	f := func() autodiff.Variable {
		z := x.Sin().Add(y.Tan())
		return z.Exp()
	}()
	grad := f.Accumulate()

	log.Printf("block expression: f = %v", f.Value)
	log.Printf("  df/dx = %v", grad.Wrt(x))
	log.Printf("  df/dy = %v", grad.Wrt(y))
}

// closures mirrors the "closures" section: the same expression built
// fresh from a Go closure and re-evaluated each call.
func closures() {
	tape := autodiff.NewTape()
	x := tape.Var(1)
	y := tape.Var(2)

	closure := func() autodiff.Variable {
		return x.Mul(y).Cosh().Div(x.Tanh().Mul(y.Sinh()))
	}
	z := closure()
	grad := z.Accumulate()

	log.Printf("closure: z = %v", z.Value)
	log.Printf("  dz/dx = %v", grad.Wrt(x))
	log.Printf("  dz/dy = %v", grad.Wrt(y))
}

// multiVariableFunction mirrors the "proper functions" section:
// f = x^y + sin(1) - asinh(z)/2, at x=3, y=2, z=1.
func multiVariableFunction() {
	fn := func(v []autodiff.Variable, c []float64) autodiff.Variable {
		return v[0].Pow(v[1]).AddC(math.Sin(c[0])).Sub(v[2].Asinh().DivC(c[1]))
	}

	tape := autodiff.NewTape()
	vars := tape.Vars([]float64{3.0, 2.0, 1.0})
	constants := []float64{1, 2}

	result := fn(vars, constants)
	grad := result.Accumulate()

	log.Printf("multi-variable function: f = %v", result.Value)
	log.Printf("  grad = %v", grad.WrtSlice(vars))
}

// barrierOption prices a down-and-out call with Variable operands, so
// that delta drops out of the same Accumulate call as the price.
func barrierOption() {
	tape := autodiff.NewTape()
	S := tape.Var(100)
	X, H, tt, r, v, K, q := 100.0, 95.0, 0.5, 0.08, 0.25, 3.0, 0.04

	price := options.BarrierOptionClosedForm(
		S, tape.Var(X), tape.Var(H), tape.Var(tt), tape.Var(r),
		tape.Var(v), tape.Var(K), tape.Var(q), options.DownOutCall)
	grad := price.Accumulate()

	log.Printf("down-and-out call: price = %v", price.Value)
	log.Printf("  delta = %v", grad.Wrt(S))
}

// loadData reads a one-column CSV given as a positional argument, or
// falls back to an embedded sample return series.
func loadData() []float64 {
	if flag.NArg() == 0 {
		return []float64{
			-0.854, 1.067, -1.220, 0.818, -0.749,
			0.805, 1.443, 1.069, 1.426, 0.308,
		}
	}

	fname := flag.Arg(0)
	file, err := os.Open(fname)
	if err != nil {
		log.Fatalf("cannot open data file %q: %v", fname, err)
	}
	defer file.Close()

	var data []float64
	rdr := csv.NewReader(file)
	for {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("invalid CSV: %v", err)
		}
		value, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			log.Fatalf("invalid data: %v", err)
		}
		data = append(data, value)
	}
	return data
}

// calibrateNormalModel fits [mu, logSigma] of an iid normal model to
// data by stochastic-gradient ascent on the log-likelihood, printing
// sample statistics for comparison against the fitted values.
func calibrateNormalModel(data []float64) {
	sampleMean, sampleStddev := volatility.SampleMoments(data)

	obj := func(tape *autodiff.Tape, x []autodiff.Variable) autodiff.Variable {
		return volatility.NormalLogLikelihood(tape, x, data)
	}

	x := []float64{0.5 * rand.NormFloat64(), 1 + 0.5*rand.NormFloat64()}
	c := &calibrate.SgCalibrator{L: L, Eta: RATE / float64(len(data)), Alpha: ALPHA}
	samples := make(chan []float64)
	c.Calibrate(obj, x, samples)

	var last []float64
	for i := 0; i != NITER; i++ {
		s, ok := <-samples
		if !ok {
			break
		}
		last = s
	}
	c.Stop()
	for range samples {
		// Drain until Calibrate's goroutine observes the stop flag.
	}

	log.Printf("normal model calibration (n=%d samples):", len(data))
	log.Printf("  sample mean:   %.6g", sampleMean)
	log.Printf("  sample stddev: %.6g", sampleStddev)
	if last != nil {
		log.Printf("  fitted mean:   %.6g", last[0])
		log.Printf("  fitted stddev: %.6g", math.Exp(last[1]))
	}
}
