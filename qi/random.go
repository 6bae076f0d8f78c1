// File: qi/random.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package qi

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Randomize samples a fresh value within v's domain: Normal(value, 1.0)
// around the current value, clamped to domain, for interval; a uniform
// integer over [0,maxRank]/[0,maxCode], independent of the current code,
// for ordinal/nominal. Used
// to suppress a QI when (c,l)-diversity fails.
func Randomize(v Value, rng *rand.Rand) Value {
	switch v.Kind {
	case Interval:
		sample := distuv.Normal{Mu: v.Value, Sigma: 1.0, Src: rng}.Rand()
		v.Value = Clamp(sample, v.Min, v.Max)
		return v
	case Ordinal, Nominal:
		_, maxCode := v.CategoricalCode()
		u := distuv.Uniform{Min: 0, Max: float64(maxCode) + 1, Src: rng}
		code := int(u.Rand())
		if code > maxCode {
			code = maxCode
		}
		return v.WithCategoricalCode(code)
	default:
		return v
	}
}
