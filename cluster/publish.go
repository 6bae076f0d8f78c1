// File: cluster/publish.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Publishing gate: recursive (c,l)-diversity check, noise application or
// suppression, and analyser feed (spec.md §4.4).

package cluster

import (
	"sort"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/buffer"
	"github.com/momentics/anonstream/internal/randpool"
	"github.com/momentics/anonstream/qi"
)

// diversityValid checks recursive (c,l)-diversity: valid iff k <= |W_cur|
// and, letting s be the sorted ascending multiset of sensitive-frequency
// counts, s[0] < c * sum(s[1:]).
func (c *Cluster) diversityValid() bool {
	if c.Params.K > c.WCur.Len() {
		return false
	}
	if len(c.SensitiveFreq) == 0 {
		return false
	}
	counts := make([]int64, 0, len(c.SensitiveFreq))
	for _, n := range c.SensitiveFreq {
		counts = append(counts, n)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	var rest int64
	for _, n := range counts[1:] {
		rest += n
	}
	return float64(counts[0]) < float64(c.Params.C)*float64(rest)
}

// suppress randomizes every QI of record within its domain.
func suppress(record api.Record) api.Record {
	rng := randpool.Get()
	defer randpool.Put(rng)

	qis := record.QIs()
	out := make([]qi.Value, len(qis))
	for i, v := range qis {
		out[i] = qi.Randomize(v, rng)
	}
	return record.WithQIs(out)
}

// release applies the publishing gate to one buffer entry: checks
// diversity, generalizes via the noiser or suppresses, marks the entry
// released, feeds the analysers, and hands the result to the publisher.
func (c *Cluster) release(e *buffer.Entry, pub api.Publisher, analysers analyser.Set, now int64) {
	orig := e.Record()

	var output api.Record
	if c.diversityValid() {
		noisyQIs := c.Noiser.AddNoise(c.Centroid().QIs())
		output = orig.WithQIs(noisyQIs)
	} else {
		output = suppress(orig)
	}

	e.MarkReleased()

	risk := analysers.Observe(orig, output, now)
	if err := pub.Publish(output, c.ID, risk); err != nil {
		// PublisherFailure (spec.md §7): logged, record still counts as
		// released (at-most-once semantics) — we never retry or requeue.
		c.Logger.Error().Err(err).Str("cluster_id", c.ID).Msg("publisher failed")
	}
}

// PublishLatest releases the most recently admitted, still-unreleased
// entry in W_cur, if any.
func (c *Cluster) PublishLatest(pub api.Publisher, analysers analyser.Set, now int64) {
	entries := c.WCur.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].Released() {
			c.release(entries[i], pub, analysers, now)
			return
		}
	}
}

// PublishAll releases every unreleased entry in W_cur, in FIFO (insertion)
// order (spec.md §9 Open Question, resolved: preserve insertion order).
func (c *Cluster) PublishAll(pub api.Publisher, analysers analyser.Set, now int64) {
	for _, e := range c.WCur.Entries() {
		if !e.Released() {
			c.release(e, pub, analysers, now)
		}
	}
}
