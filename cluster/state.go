// File: cluster/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// State is a descriptive label for observability/testing only — the
// engine's admission orchestration (engine.Engine.Anonymize) checks each
// of these conditions independently and in the exact order spec.md §4.4
// describes, rather than branching on a single exclusive state. Multiple
// conditions can hold at once (e.g. Full coinciding with ReadyToPublish
// when max_buffer_size == k); State reports the highest-priority one.

package cluster

// State is the closed set of cluster lifecycle labels from spec.md §4.4.
type State int

const (
	Growing State = iota
	ReadyToPublish
	PostK
	Full
	Expired
	Dead
)

func (s State) String() string {
	switch s {
	case Growing:
		return "growing"
	case ReadyToPublish:
		return "ready_to_publish"
	case PostK:
		return "post_k"
	case Full:
		return "full"
	case Expired:
		return "expired"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// State reports the cluster's current lifecycle label, priority ordered
// Dead > Expired > Full > ReadyToPublish > PostK > Growing.
func (c *Cluster) State(now, deltaNS int64) State {
	n := c.WCur.Len()
	switch {
	case c.CompleteBufferAmount > int64(c.Params.KMax):
		return Dead
	case c.AgeNS(now) >= deltaNS:
		return Expired
	case n == c.Params.MaxBufferSize:
		return Full
	case n == c.Params.K:
		return ReadyToPublish
	case n > c.Params.K && n <= c.Params.KMax+1:
		return PostK
	default:
		return Growing
	}
}
