// File: cluster/cluster.go
// Package cluster implements the live micro-cluster: two centroid-buffer
// windows, frequency maps for diversity checks, drift detection, and the
// publishing gate (spec.md §4.4). A Cluster is identified by a fresh UUID
// and owned exclusively by one goroutine at a time — see engine's
// extract-mutate-reinsert pattern (spec.md §5, §9).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package cluster

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/buffer"
	"github.com/momentics/anonstream/qi"
)

// Params bundles the privacy/windowing parameters a cluster is
// constructed with — k, l, c, and the buffer sizing.
type Params struct {
	K             int
	KMax          int
	L             int
	C             int
	MaxBufferSize int
}

// Cluster is the live micro-cluster described in spec.md §3-§4.4.
type Cluster struct {
	ID string

	Params Params

	WCur *buffer.CentroidBuffer
	WPrev *buffer.CentroidBuffer

	// CategoricalFreq maps QI position -> code -> count, over every
	// record ever admitted. Only populated for ordinal/nominal positions.
	CategoricalFreq map[int]map[int]int64

	// SensitiveFreq maps sensitive value key -> count, over every record
	// ever admitted.
	SensitiveFreq map[string]int64

	CompleteBufferAmount int64
	LastArrival          int64

	Noiser api.Noiser

	Logger zerolog.Logger
}

// New constructs a fresh cluster with a new UUID and an empty state.
func New(params Params, noiser api.Noiser, logger zerolog.Logger) *Cluster {
	return &Cluster{
		ID:              uuid.NewString(),
		Params:          params,
		WCur:            buffer.New(params.MaxBufferSize),
		WPrev:           buffer.New(params.MaxBufferSize),
		CategoricalFreq: make(map[int]map[int]int64),
		SensitiveFreq:   make(map[string]int64),
		Noiser:          noiser,
		Logger:          logger,
	}
}

// Centroid returns the cluster's current centroid, i.e. W_cur's centroid.
func (c *Cluster) Centroid() api.Record {
	return c.WCur.Centroid()
}

// AgeNS returns the elapsed time since the cluster's last admission.
func (c *Cluster) AgeNS(now int64) int64 {
	return now - c.LastArrival
}

// Add admits record into the cluster (spec.md §4.4 Admission):
//  1. update the categorical and sensitive frequency maps
//  2. snapshot W_cur into a temporary, admit record into W_cur, and set
//     W_prev to the snapshot
//  3. bump complete_buffer_amount and last_arrival
func (c *Cluster) Add(record api.Record, now int64) {
	c.updateFrequencies(record)

	snapshot := c.WCur.Clone()
	c.WCur.Admit(record)
	c.WPrev = snapshot

	c.CompleteBufferAmount++
	c.LastArrival = now
}

func (c *Cluster) updateFrequencies(record api.Record) {
	for pos, v := range record.QIs() {
		if v.Kind == qi.Interval {
			continue
		}
		code, _ := v.CategoricalCode()
		m, ok := c.CategoricalFreq[pos]
		if !ok {
			m = make(map[int]int64)
			c.CategoricalFreq[pos] = m
		}
		m[code]++
	}
	c.SensitiveFreq[record.Sensitive().Key()]++
}
