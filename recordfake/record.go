// Package recordfake provides a fake api.Record implementation for tests
// that drive the engine, cluster, and noiser packages without depending
// on any concrete, external record schema (spec.md §6 treats record
// schemas as a collaborator's concern).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package recordfake

import (
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

// Record is a fake, immutable-on-WithQIs implementation of api.Record.
type Record struct {
	qis       []qi.Value
	sensitive api.Sensitive
	timestamp int64
}

// New builds a fake record with the given QIs, sensitive value, and
// ingestion timestamp.
func New(qis []qi.Value, sensitive api.Sensitive, timestamp int64) *Record {
	return &Record{qis: qis, sensitive: sensitive, timestamp: timestamp}
}

// QIs returns the record's quasi-identifiers.
func (r *Record) QIs() []qi.Value { return r.qis }

// WithQIs returns a new Record with qis replaced, preserving sensitive
// value and timestamp (spec.md §3 Record capability contract).
func (r *Record) WithQIs(qis []qi.Value) api.Record {
	return &Record{qis: qis, sensitive: r.sensitive, timestamp: r.timestamp}
}

// Sensitive returns the record's sensitive attribute.
func (r *Record) Sensitive() api.Sensitive { return r.sensitive }

// Timestamp returns the record's ingestion timestamp.
func (r *Record) Timestamp() int64 { return r.timestamp }

// ToStringRow renders a minimal CSV-style row for export tests.
func (r *Record) ToStringRow(clusterID string, disclosureRisk float64) []string {
	row := make([]string, 0, len(r.qis)+3)
	row = append(row, clusterID)
	for _, v := range r.qis {
		row = append(row, v.Kind.String())
	}
	row = append(row, r.sensitive.Key())
	return row
}
