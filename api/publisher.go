// File: api/publisher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Publisher is the opaque outbound sink every released (or suppressed)
// record is handed to. Implementations may be synchronous or buffered;
// the engine calls Publish synchronously and treats it as may-block, so a
// slow publisher exerts backpressure on admission.
//
// A non-nil error is logged by the caller and the record is still
// considered released (at-most-once semantics, spec.md §7
// PublisherFailure) — Publish's error return exists for observability,
// not for retry.
type Publisher interface {
	Publish(record Record, clusterID string, disclosureRisk float64) error
}
