// File: engine/engine.go
// Package engine implements the anonymizer engine (spec.md §4.5): it owns
// the set of live clusters, routes each incoming record to its best
// cluster or creates one, and drives publishing and eviction.
//
// Engine exposes a single-writer contract: Anonymize is not safe to call
// concurrently with itself on the same instance (spec.md §5). The
// best-cluster scan may itself fan out across goroutines, but only while
// clusters are read-only; no cluster is mutated until the scan completes
// and the winner is exclusively removed from the map (see scan.go).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/cluster"
	"github.com/momentics/anonstream/control"
	"github.com/momentics/anonstream/internal/clock"
	"github.com/momentics/anonstream/qi"
)

// Engine is the anonymizer engine described in spec.md §4.5.
type Engine struct {
	cfg *control.Config

	publisher   api.Publisher
	noiserProto api.Noiser
	analysers   analyser.Set

	clock  *clock.Source
	logger zerolog.Logger

	// clusters is the ordered mapping from last_arrival to cluster
	// (spec.md §3 Engine state). Go's map has no iteration order of its
	// own; scan.go sorts keys before scanning so "first-encountered" tie
	// breaking (spec.md §4.5 step 1) is deterministic despite that.
	clusters map[int64]*cluster.Cluster

	qiSchema   []qi.Value
	haveSchema bool

	closed bool
}

// New constructs an Engine. noiserProto is cloned into every newly created
// cluster (spec.md §4.5 state); analysers is the shared vector of
// accumulators every cluster feeds on release.
func New(cfg *control.Config, publisher api.Publisher, noiserProto api.Noiser, analysers analyser.Set, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:         cfg,
		publisher:   publisher,
		noiserProto: noiserProto,
		analysers:   analysers,
		clock:       clock.NewSource(),
		logger:      logger,
		clusters:    make(map[int64]*cluster.Cluster),
	}
}

func (e *Engine) clusterParams() cluster.Params {
	return cluster.Params{
		K:             e.cfg.K,
		KMax:          e.cfg.KMax,
		L:             e.cfg.L,
		C:             e.cfg.C,
		MaxBufferSize: e.cfg.BufferSize,
	}
}

func (e *Engine) newCluster() *cluster.Cluster {
	return cluster.New(e.clusterParams(), e.noiserProto.Clone(), e.logger)
}

// SetNoiserPrototype replaces the prototype cloned into newly created
// clusters (e.g. on a live eps reload via control.ConfigStore). Clusters
// already live keep whichever noiser they were created with — only future
// clusters see the change.
func (e *Engine) SetNoiserPrototype(n api.Noiser) {
	e.noiserProto = n
}

// Anonymize admits one record (spec.md §4.5). Not safe for concurrent use
// with itself on the same Engine.
func (e *Engine) Anonymize(record api.Record) error {
	if e.closed {
		return ErrClosed
	}

	qis := record.QIs()
	if !e.haveSchema {
		e.qiSchema = qis
		e.haveSchema = true
	} else {
		// SchemaMismatch (spec.md §7): fatal, programmer error, surfaced
		// immediately rather than recovered.
		qi.ValidateSchema(e.qiSchema, qis)
	}

	now := e.clock.Next()

	key, found := e.findBestCluster(record)
	if !found {
		e.admitIntoNew(record, now)
		return nil
	}

	c := e.clusters[key]
	delete(e.clusters, key)

	if c.AgeNS(now) >= e.cfg.DeltaNS() {
		// Expiry replace (spec.md §4.5 step 3a): neither a create nor a
		// delete event for the cluster-stat analyser — only creation from
		// nothing (step 2) and eviction past k_max (step 3e) count.
		c.PublishAll(e.publisher, e.analysers, now)
		c = e.newCluster()
	}

	c.Add(record, now)

	switch n := c.WCur.Len(); {
	case n == c.Params.K:
		c.PublishAll(e.publisher, e.analysers, now)
	case n > c.Params.K && n <= c.Params.KMax+1:
		c.PublishLatest(e.publisher, e.analysers, now)
	}

	if c.WCur.IsFull() {
		c.DetectDrift(cluster.DefaultKSAlpha)
	}

	if c.CompleteBufferAmount > int64(c.Params.KMax) {
		c.PublishAll(e.publisher, e.analysers, now)
		e.analysers.ClusterDeleted()
		return nil
	}

	// c.LastArrival was just set by Add(record, now); clock.Source
	// guarantees now is strictly greater than every previously issued
	// timestamp, so the reinsertion key can never collide with an
	// existing entry — no busy-loop is needed (spec.md §9 design note).
	e.clusters[c.LastArrival] = c
	return nil
}

// admitIntoNew creates a fresh cluster, admits record into it, and inserts
// it keyed by now (spec.md §4.5 step 2).
func (e *Engine) admitIntoNew(record api.Record, now int64) {
	c := e.newCluster()
	c.Add(record, now)
	e.clusters[c.LastArrival] = c
	e.analysers.ClusterCreated()
}

// Metrics returns a snapshot of every analyser's current report, suitable
// for feeding control.MetricsRegistry.
func (e *Engine) Metrics() map[string]any {
	return e.analysers.Snapshot()
}

// LiveClusterCount reports how many clusters are currently held.
func (e *Engine) LiveClusterCount() int {
	return len(e.clusters)
}

// ClusterStateCounts reports how many live clusters currently report each
// cluster.State label (spec.md §4.4), for observability only — admission
// never branches on this. Unlike Anonymize's now, this uses wall-clock
// time directly rather than clock.Source, since a debug read must not
// consume a tick from the strictly-monotonic admission clock.
func (e *Engine) ClusterStateCounts() map[string]int {
	now := time.Now().UnixNano()
	counts := make(map[string]int)
	for _, c := range e.clusters {
		counts[c.State(now, e.cfg.DeltaNS()).String()]++
	}
	return counts
}
