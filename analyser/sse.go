// File: analyser/sse.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package analyser

import (
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

// sseAccumulator tracks the running sum of information loss across every
// release — unlike MSE it reports the raw sum, not a mean.
type sseAccumulator struct {
	sum float64
}

func (s *sseAccumulator) observe(orig, output api.Record) {
	s.sum += qi.InfoLoss(orig.QIs(), output.QIs())
}

func (s *sseAccumulator) report() float64 {
	return s.sum
}
