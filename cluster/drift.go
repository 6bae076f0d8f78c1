// File: cluster/drift.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concept-drift detection: a two-window statistical comparison invoked
// exactly when W_cur becomes full (spec.md §4.4).

package cluster

import (
	"math"
	"sort"

	"github.com/momentics/anonstream/buffer"
	"github.com/momentics/anonstream/qi"
)

// ksCriticalValues is the fixed two-sample KS critical-value table,
// keyed by significance level α (spec.md §6).
var ksCriticalValues = map[float64]float64{
	0.10:  1.22,
	0.05:  1.36,
	0.025: 1.48,
	0.01:  1.63,
	0.005: 1.73,
	0.001: 1.95,
}

// DefaultKSAlpha is the significance level used when none is specified.
const DefaultKSAlpha = 0.10

// ksCoefficient returns the critical-value coefficient for alpha, falling
// back to the default (1.22) for an unlisted level.
func ksCoefficient(alpha float64) float64 {
	if v, ok := ksCriticalValues[alpha]; ok {
		return v
	}
	return ksCriticalValues[DefaultKSAlpha]
}

// tau computes the two-sample KS rejection threshold for window sizes
// nCur, nPrev at the given coefficient.
func tau(nCur, nPrev int, coefficient float64) float64 {
	if nCur == 0 || nPrev == 0 {
		return math.Inf(1)
	}
	return coefficient * math.Sqrt(float64(nCur+nPrev)/(float64(nCur)*float64(nPrev)))
}

// ksStatistic computes the classic two-sample Kolmogorov-Smirnov
// statistic: the maximum absolute difference between the two samples'
// empirical CDFs.
func ksStatistic(a, b []float64) float64 {
	sa := append([]float64(nil), a...)
	sb := append([]float64(nil), b...)
	sort.Float64s(sa)
	sort.Float64s(sb)

	na, nb := float64(len(sa)), float64(len(sb))
	var i, j int
	var maxD float64
	for i < len(sa) && j < len(sb) {
		// Step past every copy of the smaller current value in both
		// samples together, so tied values never open a spurious gap.
		x := math.Min(sa[i], sb[j])
		for i < len(sa) && sa[i] == x {
			i++
		}
		for j < len(sb) && sb[j] == x {
			j++
		}
		d := math.Abs(float64(i)/na - float64(j)/nb)
		if d > maxD {
			maxD = d
		}
	}
	return maxD
}

// DetectDrift compares W_cur against W_prev and resets W_cur's centroid
// (and the cluster centroid) to W_prev's if drift is rejected. W_cur's
// entries are emptied either way. Must be invoked exactly when
// WCur.IsFull() (spec.md §4.4).
func (c *Cluster) DetectDrift(alpha float64) {
	coefficient := ksCoefficient(alpha)

	nCur, nPrev := c.WCur.Len(), c.WPrev.Len()
	threshold := tau(nCur, nPrev, coefficient)

	var rejected bool
	if len(c.CategoricalFreq) == 0 {
		curVals := flattenEntries(c.WCur.Entries())
		prevVals := flattenEntries(c.WPrev.Entries())
		rejected = ksStatistic(curVals, prevVals) > threshold
	} else {
		rejected = qi.Distance(c.WCur.Centroid().QIs(), c.WPrev.Centroid().QIs()) > threshold
	}

	if rejected {
		c.WCur.SetCentroid(c.WPrev.Centroid())
	}
	c.WCur.Reset()
}

// flattenEntries concatenates every numeric QI of every record in a buffer's
// entries, in buffer order.
func flattenEntries(entries []*buffer.Entry) []float64 {
	var out []float64
	for _, e := range entries {
		for _, v := range e.Record().QIs() {
			if v.Kind == qi.Interval {
				out = append(out, v.Value)
			}
		}
	}
	return out
}
