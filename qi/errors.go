// File: qi/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package qi

import "errors"

var (
	// ErrSchemaMismatch indicates two QI lists differ in length or in
	// per-position kind/domain. It is a fatal, programmer-error condition:
	// callers are expected to validate schema once at stream ingestion
	// (see engine.Engine.Anonymize) rather than recover from it deep in
	// the algebra.
	ErrSchemaMismatch = errors.New("qi: schema mismatch between QI lists")

	// ErrEmptyList indicates Aggregate was called with no records.
	ErrEmptyList = errors.New("qi: aggregate called on empty list")
)

// ValidateSchema panics with ErrSchemaMismatch if a and b are not
// comparable position-by-position. Exported so collaborators (engine,
// cluster) can perform the one admission-time check spec.md §7 calls for,
// instead of re-checking on every algebra call.
func ValidateSchema(a, b []Value) {
	if len(a) != len(b) {
		panic(ErrSchemaMismatch)
	}
	for i := range a {
		if !a[i].sameShape(b[i]) {
			panic(ErrSchemaMismatch)
		}
	}
}
