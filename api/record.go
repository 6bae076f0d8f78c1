// File: api/record.go
// Package api defines the capability interfaces the anonymization core
// operates through. Concrete record schemas, transports, and sinks are
// collaborators implemented outside this module (spec.md §6); the core
// never depends on them directly.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package api

import "github.com/momentics/anonstream/qi"

// SensitiveKind is the closed set of sensitive-attribute representations.
type SensitiveKind int

const (
	SensitiveString SensitiveKind = iota
	SensitiveInteger
)

// Sensitive is a tagged sensitive-attribute value (string or integer).
type Sensitive struct {
	Kind SensitiveKind
	Str  string
	Int  int64
}

// SensitiveStringValue builds a string-typed sensitive value.
func SensitiveStringValue(s string) Sensitive { return Sensitive{Kind: SensitiveString, Str: s} }

// SensitiveIntValue builds an integer-typed sensitive value.
func SensitiveIntValue(i int64) Sensitive { return Sensitive{Kind: SensitiveInteger, Int: i} }

// Key returns a stable map key for frequency counting regardless of kind.
func (s Sensitive) Key() string {
	if s.Kind == SensitiveInteger {
		return "i:" + itoa(s.Int)
	}
	return "s:" + s.Str
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Record is the capability every stream record must satisfy. Positions of
// the QI list are fixed for the lifetime of a stream — every record
// admitted into the engine must report the same length and per-position
// kinds (see qi.ValidateSchema).
type Record interface {
	// QIs returns the record's quasi-identifiers, in stable position order.
	QIs() []qi.Value
	// WithQIs returns a new record with its QIs replaced; all other fields
	// (sensitive value, timestamp, identity) are preserved.
	WithQIs(qis []qi.Value) Record
	// Sensitive returns the record's sensitive attribute.
	Sensitive() Sensitive
	// Timestamp returns the record's ingestion time, monotonic nanoseconds.
	Timestamp() int64
	// ToStringRow renders the record for export, given the releasing
	// cluster's identity and the disclosure-risk estimate at release time.
	ToStringRow(clusterID string, disclosureRisk float64) []string
}
