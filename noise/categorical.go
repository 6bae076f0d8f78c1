// File: noise/categorical.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package noise

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/momentics/anonstream/internal/randpool"
	"github.com/momentics/anonstream/qi"
)

// categoricalSubNoiser tracks every distinct code observed at an
// ordinal/nominal position and occasionally flips the released code to a
// different observed one (spec.md §4.3).
type categoricalSubNoiser struct {
	noiseThr     float64
	streamWeight int

	codes []int
	seen  map[int]bool
}

func newCategoricalSubNoiser(noiseThr float64, streamWeight int) *categoricalSubNoiser {
	return &categoricalSubNoiser{
		noiseThr: noiseThr, streamWeight: streamWeight,
		seen: make(map[int]bool),
	}
}

func (n *categoricalSubNoiser) insert(code int) {
	if !n.seen[code] {
		n.seen[code] = true
		n.codes = append(n.codes, code)
	}
}

func (n *categoricalSubNoiser) next(v qi.Value) qi.Value {
	code, _ := v.CategoricalCode()
	n.insert(code)

	rng := randpool.Get()
	defer randpool.Put(rng)
	e := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}.Rand()

	if len(n.codes) > 1 && e < n.noiseThr*float64(n.streamWeight) {
		for {
			idx := rng.Intn(len(n.codes))
			if n.codes[idx] != code {
				return v.WithCategoricalCode(n.codes[idx])
			}
		}
	}
	return v
}
