// File: analyser/mse.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package analyser

import (
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

// mseAccumulator tracks the mean normalized distance (qi.Distance, not
// squared) between every original and its released/suppressed output.
type mseAccumulator struct {
	sum   float64
	count int64
}

func (m *mseAccumulator) observe(orig, output api.Record) {
	m.sum += qi.Distance(orig.QIs(), output.QIs())
	m.count++
}

func (m *mseAccumulator) report() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
