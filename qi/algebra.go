// File: qi/algebra.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core QI algebra: weighted distance, information loss, and per-position
// aggregation. Callers must have validated equal length and matching
// per-position kinds beforehand (see ValidateSchema); these functions
// assume it and do not re-check on every call.

package qi

import (
	"math"
	"sort"
)

// Distance computes the weighted, normalized distance between two QI
// lists of equal length and matching position kinds, in [0,1].
//
//	interval: weight * |x-y| / (max-min)
//	ordinal:  weight * |r(x)-r(y)|, r(v) = (v-1)/(maxRank-1)
//	nominal:  0 if equal else weight
//
// The sum is normalized by the total weight across positions.
func Distance(a, b []Value) float64 {
	var sum, weightSum float64
	for i := range a {
		x, y := a[i], b[i]
		w := float64(x.Weight)
		weightSum += w
		switch x.Kind {
		case Interval:
			span := x.Max - x.Min
			if span != 0 {
				sum += w * math.Abs(x.Value-y.Value) / span
			}
		case Ordinal:
			sum += w * math.Abs(ordinalRank(x)-ordinalRank(y))
		case Nominal:
			if x.Code != y.Code {
				sum += w
			}
		}
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

func ordinalRank(v Value) float64 {
	if v.MaxRank <= 1 {
		return 0
	}
	return float64(v.Rank-1) / float64(v.MaxRank-1)
}

// InfoLoss computes the Euclidean distance between the raw numeric values
// of two QI lists: the interval value itself, or the integer code for
// ordinal/nominal positions.
func InfoLoss(a, b []Value) float64 {
	var sumSq float64
	for i := range a {
		dx := rawNumeric(a[i]) - rawNumeric(b[i])
		sumSq += dx * dx
	}
	return math.Sqrt(sumSq)
}

func rawNumeric(v Value) float64 {
	switch v.Kind {
	case Interval:
		return v.Value
	case Ordinal:
		return float64(v.Rank)
	case Nominal:
		return float64(v.Code)
	default:
		return 0
	}
}

// Clamp restricts value to [min,max].
func Clamp(value, min, max float64) float64 {
	if value <= min {
		return min
	}
	if value >= max {
		return max
	}
	return value
}

// Aggregate computes the per-position centroid of a set of same-shaped QI
// lists: mean for interval, mode for ordinal/nominal (ties broken by
// smallest code). Domain fields are inherited from the first list.
func Aggregate(lists [][]Value) ([]Value, error) {
	if len(lists) == 0 {
		return nil, ErrEmptyList
	}
	positions := len(lists[0])
	out := make([]Value, positions)
	for p := 0; p < positions; p++ {
		first := lists[0][p]
		switch first.Kind {
		case Interval:
			var sum float64
			for _, rec := range lists {
				sum += rec[p].Value
			}
			out[p] = Value{
				Kind: Interval, Value: sum / float64(len(lists)),
				Min: first.Min, Max: first.Max, Weight: first.Weight,
			}
		case Ordinal:
			counts := make(map[int]int)
			for _, rec := range lists {
				counts[rec[p].Rank]++
			}
			out[p] = Value{
				Kind: Ordinal, Rank: modeKey(counts),
				MaxRank: first.MaxRank, Weight: first.Weight,
			}
		case Nominal:
			counts := make(map[int]int)
			for _, rec := range lists {
				counts[rec[p].Code]++
			}
			out[p] = Value{
				Kind: Nominal, Code: modeKey(counts),
				MaxCode: first.MaxCode, Weight: first.Weight,
			}
		}
	}
	return out, nil
}

// modeKey returns the key with the highest count, ties broken by the
// smallest key (counts are scanned in ascending key order and only
// replaced on a strictly greater count).
func modeKey(counts map[int]int) int {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	best := keys[0]
	bestCount := counts[best]
	for _, k := range keys[1:] {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
