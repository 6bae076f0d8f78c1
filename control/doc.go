// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration validation, and debug
// introspection layer for the anonymization engine.
//
// Provides concurrent-safe state handling primitives including:
//   - Config, the validated startup parameter set (k, l, c, eps, ...)
//   - ConfigStore, a live key/value store for operator-tunable parameters
//     (diff_thres, eps) with reload-listener fan-out
//   - MetricsRegistry, the sink analyser.Set.Snapshot() is copied into on
//     each facade System.Metrics call
//   - DebugProbes, named introspection hooks the facade exposes for ops
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
