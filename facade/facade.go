// File: facade/facade.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// System is the facade that orchestrates the anonymization engine's
// subsystems — config validation, structured logging, the noiser
// prototype, the analyser fan-out, and the engine itself — behind a
// simple, composable API, the way HioloadWS orchestrated the transport,
// pooling, and reactor subsystems it was adapted from.

package facade

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/momentics/anonstream/analyser"
	"github.com/momentics/anonstream/api"
	"github.com/momentics/anonstream/control"
	"github.com/momentics/anonstream/engine"
	"github.com/momentics/anonstream/noise"
)

// System is the main facade struct, providing access to the anonymizer
// engine along with its live configuration, metrics, and debug surfaces.
type System struct {
	cfg *control.Config

	configStore *control.ConfigStore
	metrics     *control.MetricsRegistry
	debug       *control.DebugProbes
	logger      zerolog.Logger

	eng *engine.Engine

	mu      sync.RWMutex
	started bool
}

// New validates cfg, wires a default noiser prototype and analyser set,
// and constructs a System ready for Start. publisher is the caller's
// outbound sink (spec.md §6); cfg is retained and may be live-edited
// through SetLiveConfig for diff_thres (immediately effective) and eps
// (effective for clusters created from this point on).
func New(cfg *control.Config, publisher api.Publisher, logger zerolog.Logger) (*System, error) {
	if cfg == nil {
		return nil, fmt.Errorf("facade: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("facade: %w", err)
	}

	noiserProto := noise.New(cfg.Eps, cfg.K, cfg.NoiseThr)
	analysers := analyser.Set{
		analyser.NewMSE(),
		analyser.NewSSE(),
		analyser.NewDelay(),
		analyser.NewDisclosureRisk(cfg.DisclosureRingCapacity),
		analyser.NewClusterStat(),
	}

	s := &System{
		cfg:         cfg,
		configStore: control.NewConfigStore(),
		metrics:     control.NewMetricsRegistry(),
		debug:       control.NewDebugProbes(),
		logger:      logger,
		eng:         engine.New(cfg, publisher, noiserProto, analysers, logger),
	}

	s.configStore.SetConfig(map[string]any{
		"diff_thres": cfg.DiffThres,
		"eps":        cfg.Eps,
	})
	s.debug.RegisterProbe("engine.live_clusters", func() any { return s.eng.LiveClusterCount() })
	s.debug.RegisterProbe("engine.metrics", func() any { return s.eng.Metrics() })
	s.debug.RegisterProbe("cluster.states", func() any { return s.eng.ClusterStateCounts() })
	control.RegisterPlatformProbes(s.debug)

	return s, nil
}

// Start marks the system ready to accept records. It is idempotent.
func (s *System) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true
	s.logger.Info().Msg("anonymization engine started")
	return nil
}

// Anonymize admits one record into the engine (spec.md §4.5). Not safe
// for concurrent use with itself.
func (s *System) Anonymize(record api.Record) error {
	return s.eng.Anonymize(record)
}

// SetLiveConfig applies operator-tunable overrides (diff_thres, eps) and
// fans out the change to any registered reload hooks. diff_thres takes
// effect immediately (the engine shares the same *control.Config
// pointer); eps only affects clusters created after this call, since a
// noiser's scale parameters are fixed at construction (spec.md §4.3).
func (s *System) SetLiveConfig(updates map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := updates["diff_thres"].(float64); ok {
		s.cfg.DiffThres = v
	}
	if v, ok := updates["eps"].(float64); ok {
		s.cfg.Eps = v
		s.eng.SetNoiserPrototype(noise.New(v, s.cfg.K, s.cfg.NoiseThr))
	}
	s.configStore.SetConfig(updates)
	control.TriggerHotReload()
}

// RegisterReloadHook registers a callback invoked whenever SetLiveConfig
// changes the live configuration. Hooks are registered both on this
// System's own ConfigStore (fired with the update that triggered it) and
// on the package-level hot-reload registry (fired on every System's
// SetLiveConfig calls), mirroring the teacher's co-existence of a
// per-instance and a process-wide reload mechanism.
func (s *System) RegisterReloadHook(fn func()) {
	s.configStore.OnReload(fn)
	control.RegisterReloadHook(fn)
}

// Metrics returns a snapshot of every analyser's current report, refreshed
// into the metrics registry first.
func (s *System) Metrics() map[string]any {
	snap := s.eng.Metrics()
	for k, v := range snap {
		s.metrics.Set(k, v)
	}
	return s.metrics.GetSnapshot()
}

// Debug exposes the named introspection probes for operational tooling.
func (s *System) Debug() *control.DebugProbes {
	return s.debug
}

// Stop drains the engine (per cfg.PublishRemainingOnShutdown) and marks
// the system stopped. Idempotent.
func (s *System) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.eng.Drain()
	s.started = false
	s.logger.Info().Msg("anonymization engine stopped")
	return nil
}

// Shutdown is an alias for Stop, kept for symmetry with the lifecycle
// naming the rest of the corpus uses.
func (s *System) Shutdown() error {
	return s.Stop()
}
