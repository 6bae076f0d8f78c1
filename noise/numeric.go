// File: noise/numeric.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package noise

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/momentics/anonstream/internal/randpool"
	"github.com/momentics/anonstream/qi"
)

// epsMachine is float64 machine epsilon, used as the Laplace noise draw's
// floor so ln() never sees zero or a negative argument.
const epsMachine = 2.220446049250313e-16

// ErrArithmeticDegenerate marks a programmer-error condition spec.md §7
// treats as fatal: an empty history on scale estimation. It is raised via
// panic, never returned, per the core's propagation policy.
var ErrArithmeticDegenerate = errors.New("noise: arithmetic degenerate state")

// numericSubNoiser estimates an online Laplace noise scale from a sliding
// window of recently observed values (spec.md §4.3).
type numericSubNoiser struct {
	eps     float64
	k       int
	qiCount int
	window  int

	history    []float64
	runningMin float64
	runningMax float64
}

func newNumericSubNoiser(eps float64, k, qiCount int) *numericSubNoiser {
	window := int(math.Sqrt(float64(k)))
	if window < 2 {
		window = 2
	}
	return &numericSubNoiser{
		eps: eps, k: k, qiCount: qiCount, window: window,
		runningMin: math.Inf(1), runningMax: math.Inf(-1),
	}
}

func (n *numericSubNoiser) observe(v float64) {
	if v < n.runningMin {
		n.runningMin = v
	}
	if v > n.runningMax {
		n.runningMax = v
	}
	n.history = append(n.history, v)
	if len(n.history) > n.window {
		n.history = n.history[1:]
	}
}

func (n *numericSubNoiser) scale() float64 {
	if len(n.history) == 0 {
		panic(ErrArithmeticDegenerate)
	}
	lo, hi := n.history[0], n.history[0]
	for _, v := range n.history[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	predictedSensitivity := hi - lo
	return 0.5 * float64(n.qiCount) * predictedSensitivity / (float64(n.k) * n.eps)
}

func (n *numericSubNoiser) next(v qi.Value) qi.Value {
	n.observe(v.Value)
	scale := n.scale()

	rng := randpool.Get()
	u := distuv.Uniform{Min: -0.5, Max: 0.5, Src: rng}.Rand()
	randpool.Put(rng)

	sign := 1.0
	if u < 0 {
		sign = -1.0
	}
	diff := math.Max(epsMachine, 1-2*math.Abs(u))
	noise := -scale * sign * math.Log(diff)

	v.Value = qi.Clamp(v.Value+noise, v.Min, v.Max)
	return v
}
