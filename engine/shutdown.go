// File: engine/shutdown.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Graceful shutdown (spec.md §4.5 Shutdown, §7 ShutdownDrain): releases
// or drops every unreleased record in every live cluster, per the
// publish_remaining_on_shutdown flag, then marks the engine closed.

package engine

import "github.com/momentics/anonstream/cluster"

// Drain releases (if cfg.PublishRemainingOnShutdown) or drops every
// unreleased record across all live clusters, then closes the engine —
// subsequent Anonymize calls return ErrClosed.
func (e *Engine) Drain() {
	if e.closed {
		return
	}
	now := e.clock.Next()
	if e.cfg.PublishRemainingOnShutdown {
		for _, c := range e.clusters {
			c.PublishAll(e.publisher, e.analysers, now)
		}
	}
	e.clusters = make(map[int64]*cluster.Cluster)
	e.closed = true
}
