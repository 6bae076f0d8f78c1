// File: buffer/centroid.go
// Package buffer implements the bounded sliding window of admitted
// records plus their aggregated centroid, used by cluster.Cluster as both
// W_cur and W_prev.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package buffer

import (
	"github.com/eapache/queue"

	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/qi"
)

// Entry pairs an admitted record with its release state. Entries are
// heap-allocated and shared between a CentroidBuffer and any snapshot
// Clone of it, so marking one released is visible through both.
type Entry struct {
	released bool
	record   api.Record
}

// Record returns the original admitted record.
func (e *Entry) Record() api.Record { return e.record }

// Released reports whether this entry has already been published.
func (e *Entry) Released() bool { return e.released }

// MarkReleased flags the entry as published. Idempotent by convention:
// callers are expected to check Released first (see invariant 5,
// spec.md §8 — no record released twice from the same cluster entry).
func (e *Entry) MarkReleased() { e.released = true }

// CentroidBuffer is a fixed-capacity FIFO of Entry plus the record-shaped
// aggregate of its contents. It recomputes the centroid from scratch on
// every admission: simple, avoids aggregation-order drift, and stays
// cheap because the buffer is sized relative to k (spec.md §4.2).
type CentroidBuffer struct {
	q        *queue.Queue
	max      int
	centroid api.Record
}

// New creates an empty CentroidBuffer with the given maximum size.
func New(max int) *CentroidBuffer {
	return &CentroidBuffer{q: queue.New(), max: max}
}

// Admit pushes record at the back, recomputes the centroid over the full
// buffer contents, and returns the new centroid. If the buffer is already
// at capacity (the caller should normally have reset it via drift
// detection before this happens) the oldest entry is evicted first, to
// preserve the bounded-window invariant defensively.
func (b *CentroidBuffer) Admit(record api.Record) api.Record {
	if b.q.Length() >= b.max && b.max > 0 {
		b.q.Remove()
	}
	b.q.Add(&Entry{record: record})
	b.recompute()
	return b.centroid
}

func (b *CentroidBuffer) recompute() {
	n := b.q.Length()
	if n == 0 {
		return
	}
	lists := make([][]qi.Value, n)
	for i := 0; i < n; i++ {
		lists[i] = b.q.Get(i).(*Entry).record.QIs()
	}
	agg, err := qi.Aggregate(lists)
	if err != nil {
		// n > 0 was just checked; Aggregate only fails on an empty list.
		panic(err)
	}
	base := b.q.Get(n - 1).(*Entry).record
	b.centroid = base.WithQIs(agg)
}

// Reset empties the buffer's entries. The centroid field is left
// untouched — callers that want to reset the centroid too (e.g. cluster's
// drift-rejected path) call SetCentroid explicitly.
func (b *CentroidBuffer) Reset() {
	b.q = queue.New()
}

// IsFull reports whether the buffer holds max_buffer_size entries.
func (b *CentroidBuffer) IsFull() bool {
	return b.q.Length() >= b.max
}

// Len returns the current number of entries.
func (b *CentroidBuffer) Len() int {
	return b.q.Length()
}

// Centroid returns the buffer's current aggregate record.
func (b *CentroidBuffer) Centroid() api.Record {
	return b.centroid
}

// SetCentroid overrides the stored centroid, used when drift detection
// rejects the window and resets it to the prior centroid.
func (b *CentroidBuffer) SetCentroid(rec api.Record) {
	b.centroid = rec
}

// Entries returns a snapshot slice of the buffer's entries in FIFO
// (insertion) order. The returned *Entry pointers alias the buffer's own
// storage, so MarkReleased on one is visible to future Entries() calls.
func (b *CentroidBuffer) Entries() []*Entry {
	n := b.q.Length()
	out := make([]*Entry, n)
	for i := 0; i < n; i++ {
		out[i] = b.q.Get(i).(*Entry)
	}
	return out
}

// Clone produces a shallow snapshot of b: a new backing queue holding the
// same *Entry pointers and the same centroid, used to preserve W_cur's
// pre-admission state as W_prev (spec.md §4.4 Admission step 2).
func (b *CentroidBuffer) Clone() *CentroidBuffer {
	nb := New(b.max)
	nb.centroid = b.centroid
	for i := 0; i < b.q.Length(); i++ {
		nb.q.Add(b.q.Get(i))
	}
	return nb
}
