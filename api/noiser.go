// File: api/noiser.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "github.com/momentics/anonstream/qi"

// Noiser is the pluggable ε-differential-privacy noise generator. State is
// lazily constructed on first AddNoise call, one sub-noiser per QI
// position. Each live cluster owns its own Noiser instance, obtained via
// Clone from a shared prototype — Clone must reset per-position state so
// sibling clusters never share scale estimators or observed-value sets.
type Noiser interface {
	AddNoise(qis []qi.Value) []qi.Value
	Clone() Noiser
}
