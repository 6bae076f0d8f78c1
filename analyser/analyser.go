// File: analyser/analyser.go
// Package analyser implements the analyser fan-out (spec.md §4.6): a
// tagged set of accumulators the cluster feeds on every release, plus the
// engine-level create/delete counters.
//
// Analyser kinds are a closed enumeration — prefer the tagged variant
// below over virtual dispatch, per spec.md §9 design notes.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package analyser

import "github.com/momentics/anonstream/api"

// Kind is the closed set of analyser variants.
type Kind int

const (
	KindMSE Kind = iota
	KindSSE
	KindDelay
	KindDisclosureRisk
	KindClusterStat
)

// Analyser wraps exactly one accumulator, tagged by Kind so Set can switch
// exhaustively instead of relying on an Observer interface per kind.
type Analyser struct {
	Kind Kind

	mse        *mseAccumulator
	sse        *sseAccumulator
	delay      *delayAccumulator
	disclosure *DisclosureRisk
	cluster    *ClusterStat
}

// NewMSE constructs an MSE accumulator analyser.
func NewMSE() Analyser { return Analyser{Kind: KindMSE, mse: &mseAccumulator{}} }

// NewSSE constructs an SSE accumulator analyser.
func NewSSE() Analyser { return Analyser{Kind: KindSSE, sse: &sseAccumulator{}} }

// NewDelay constructs a publishing-delay accumulator analyser.
func NewDelay() Analyser { return Analyser{Kind: KindDelay, delay: &delayAccumulator{}} }

// NewDisclosureRisk constructs a disclosure-risk analyser with the given
// ring capacity (spec.md §9 Open Question: parameterized, default 100).
func NewDisclosureRisk(capacity int) Analyser {
	return Analyser{Kind: KindDisclosureRisk, disclosure: newDisclosureRisk(capacity)}
}

// NewClusterStat constructs a cluster create/delete counter analyser.
func NewClusterStat() Analyser {
	return Analyser{Kind: KindClusterStat, cluster: &ClusterStat{}}
}

// Set is the engine's "vector of analysers" (spec.md §4.5).
type Set []Analyser

// Observe feeds one release event (original record, released/suppressed
// output, release time) to every matching accumulator, and returns the
// disclosure-risk probability for the release if a KindDisclosureRisk
// analyser is present (0 otherwise) — the value publish passes on to the
// publisher.
func (s Set) Observe(orig, output api.Record, now int64) float64 {
	var risk float64
	for i := range s {
		switch s[i].Kind {
		case KindMSE:
			s[i].mse.observe(orig, output)
		case KindSSE:
			s[i].sse.observe(orig, output)
		case KindDelay:
			s[i].delay.observe(now, orig)
		case KindDisclosureRisk:
			risk = s[i].disclosure.observe(orig, output)
		}
	}
	return risk
}

// ClusterCreated increments every KindClusterStat analyser's create counter.
func (s Set) ClusterCreated() {
	for i := range s {
		if s[i].Kind == KindClusterStat {
			s[i].cluster.created++
		}
	}
}

// ClusterDeleted increments every KindClusterStat analyser's delete counter.
func (s Set) ClusterDeleted() {
	for i := range s {
		if s[i].Kind == KindClusterStat {
			s[i].cluster.deleted++
		}
	}
}

// Snapshot collects every accumulator's current report, keyed by a stable
// metric name, for control.MetricsRegistry consumption.
func (s Set) Snapshot() map[string]any {
	out := make(map[string]any, len(s))
	for i := range s {
		switch s[i].Kind {
		case KindMSE:
			out["analyser.mse"] = s[i].mse.report()
		case KindSSE:
			out["analyser.sse"] = s[i].sse.report()
		case KindDelay:
			out["analyser.publishing_delay_ns"] = s[i].delay.report()
		case KindDisclosureRisk:
			out["analyser.disclosure_risk"] = s[i].disclosure.report()
		case KindClusterStat:
			created, deleted := s[i].cluster.report()
			out["analyser.clusters_created"] = created
			out["analyser.clusters_deleted"] = deleted
		}
	}
	return out
}
