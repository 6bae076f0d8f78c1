// Package publisherfake provides a fake api.Publisher implementation for
// tests: a simple in-memory recorder with an optional forced-failure mode
// for exercising the PublisherFailure path (spec.md §7).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package publisherfake

import (
	"errors"
	"sync"

	"github.com/momentics/anonstream/api"
)

// ErrForcedFailure is returned by Publish when FailNext/FailAlways mode
// is active.
var ErrForcedFailure = errors.New("publisherfake: forced failure")

// Published captures one call to Publish.
type Published struct {
	Record         api.Record
	ClusterID      string
	DisclosureRisk float64
}

// Publisher is a fake api.Publisher recording every call.
type Publisher struct {
	mu         sync.Mutex
	records    []Published
	failAlways bool
	failNext   int
}

// New constructs an empty fake publisher.
func New() *Publisher {
	return &Publisher{}
}

// Publish records the call, failing if in forced-failure mode.
func (p *Publisher) Publish(record api.Record, clusterID string, disclosureRisk float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failAlways || p.failNext > 0 {
		if p.failNext > 0 {
			p.failNext--
		}
		return ErrForcedFailure
	}
	p.records = append(p.records, Published{Record: record, ClusterID: clusterID, DisclosureRisk: disclosureRisk})
	return nil
}

// FailAlways makes every subsequent Publish call fail.
func (p *Publisher) FailAlways(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAlways = v
}

// FailNext makes the next n Publish calls fail.
func (p *Publisher) FailNext(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = n
}

// Records returns every successfully recorded publish, in call order.
func (p *Publisher) Records() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Published, len(p.records))
	copy(out, p.records)
	return out
}
