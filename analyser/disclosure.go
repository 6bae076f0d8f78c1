// File: analyser/disclosure.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// DisclosureRisk estimates the probability that a released record can be
// linked back to the correct original among recently seen originals
// (spec.md §4.6, §9). The ring is a bounded deque, newest at the front,
// oldest evicted from the back at capacity — modeled on the bounded
// circular structures the teacher uses for hot-path state
// (core/concurrency/ring.go), simplified here since the engine's
// single-writer contract means no atomic head/tail bookkeeping is needed.

package analyser

import (
	"math"

	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

const defaultDisclosureRingCapacity = 100

// DisclosureRisk is the analyser.
type DisclosureRisk struct {
	capacity int
	ring     []api.Record // index 0 = freshest

	sum         float64
	recordsSeen int64
}

func newDisclosureRisk(capacity int) *DisclosureRisk {
	if capacity <= 0 {
		capacity = defaultDisclosureRingCapacity
	}
	return &DisclosureRisk{capacity: capacity}
}

// observe inserts orig as the freshest ring entry, then measures whether
// the released/suppressed output is closest to that freshest entry among
// everything currently in the ring.
func (d *DisclosureRisk) observe(orig, output api.Record) float64 {
	d.recordsSeen++

	d.ring = append([]api.Record{orig}, d.ring...)
	if len(d.ring) > d.capacity {
		d.ring = d.ring[:d.capacity]
	}

	minDist := math.Inf(1)
	var argmin []int
	for i, b := range d.ring {
		dist := qi.Distance(output.QIs(), b.QIs())
		switch {
		case dist < minDist:
			minDist = dist
			argmin = []int{i}
		case dist == minDist:
			argmin = append(argmin, i)
		}
	}
	for _, idx := range argmin {
		if idx == 0 {
			d.sum += 1.0 / float64(len(argmin))
			break
		}
	}
	return d.report()
}

func (d *DisclosureRisk) report() float64 {
	if d.recordsSeen == 0 {
		return 0
	}
	return d.sum / float64(d.recordsSeen)
}
