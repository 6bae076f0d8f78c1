// File: noise/noiser.go
// Package noise implements the ε-differential-privacy noise layer: one
// Laplace sub-noiser per numeric QI position and one categorical flip
// sub-noiser per ordinal/nominal position, constructed lazily on first use
// and typed to that position (spec.md §4.3).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package noise

import (
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

var _ api.Noiser = (*Noiser)(nil)

// subNoiser is the closed set of position-local noise generators.
// Numeric and categorical are the only variants; the set never grows.
type subNoiser interface {
	next(v qi.Value) qi.Value
}

// Noiser is the api.Noiser implementation. Parameters (eps, k, noiseThr)
// are shared config; sub-noisers and the derived qiCount/streamWeight are
// per-instance state, lazily built on the first AddNoise call so Clone can
// hand every new cluster an independent noiser without knowing the
// stream's QI count up front.
type Noiser struct {
	eps      float64
	k        int
	noiseThr float64

	qiCount      int
	streamWeight int
	subNoisers   []subNoiser
}

// New constructs a noiser prototype. Call Clone to obtain the
// independent, per-cluster instance that actually accumulates state.
func New(eps float64, k int, noiseThr float64) *Noiser {
	return &Noiser{eps: eps, k: k, noiseThr: noiseThr}
}

// Clone returns a fresh Noiser sharing the same parameters but with no
// sub-noisers constructed yet, so the new cluster's scale estimators and
// observed-value sets start empty.
func (n *Noiser) Clone() api.Noiser {
	return &Noiser{eps: n.eps, k: n.k, noiseThr: n.noiseThr}
}

// AddNoise perturbs qis, lazily constructing one sub-noiser per position
// on the first call.
func (n *Noiser) AddNoise(qis []qi.Value) []qi.Value {
	if n.subNoisers == nil {
		n.qiCount = len(qis)
		n.streamWeight = sumWeights(qis)
		n.subNoisers = make([]subNoiser, len(qis))
		for i, v := range qis {
			switch v.Kind {
			case qi.Interval:
				n.subNoisers[i] = newNumericSubNoiser(n.eps, n.k, n.qiCount)
			default:
				n.subNoisers[i] = newCategoricalSubNoiser(n.noiseThr, n.streamWeight)
			}
		}
	}
	out := make([]qi.Value, len(qis))
	for i, v := range qis {
		out[i] = n.subNoisers[i].next(v)
	}
	return out
}

func sumWeights(qis []qi.Value) int {
	sum := 0
	for _, v := range qis {
		sum += v.Weight
	}
	return sum
}
