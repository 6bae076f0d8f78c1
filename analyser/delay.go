// File: analyser/delay.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package analyser

import "github.com/momentics/anonstream/api"

// delayAccumulator tracks the running mean publishing delay: the gap
// between a record's ingestion timestamp and its release time.
type delayAccumulator struct {
	sumNS int64
	count int64
}

func (d *delayAccumulator) observe(now int64, orig api.Record) {
	d.sumNS += now - orig.Timestamp()
	d.count++
}

func (d *delayAccumulator) report() int64 {
	if d.count == 0 {
		return 0
	}
	return d.sumNS / d.count
}
