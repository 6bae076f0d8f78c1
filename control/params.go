// File: control/params.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Config is the validated, engine-owned parameter set spec.md §6 lists.
// The loader that populates it from YAML/env/flags is an external
// collaborator out of scope for this module; Config and its validation
// are not.

package control

import (
	"fmt"
	"time"
)

// Config holds every parameter spec.md §6 lists as opaque-to-core
// configuration.
type Config struct {
	K    int
	KMax int
	L    int
	C    int

	Eps          float64
	DiffThres    float64
	DeltaSeconds float64
	NoiseThr     float64
	BufferSize   int

	PublishRemainingOnShutdown bool
	DisclosureRingCapacity     int
	NumWorkers                 int
}

// DeltaNS returns DeltaSeconds converted to nanoseconds.
func (c *Config) DeltaNS() int64 {
	return int64(c.DeltaSeconds * float64(time.Second))
}

// ErrInvalidConfig reports a specific validation failure.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("control: invalid config field %s: %s", e.Field, e.Reason)
}

// Validate checks every field spec.md §6 constrains, filling in defaults
// (buffer_size default 3*k, disclosure ring default 100, worker count
// default to a small positive pool) where the caller left them zero. This
// is the one user-visible, non-programmer-error validation path the core
// exposes (spec.md §7), invoked once at facade.New.
func (c *Config) Validate() error {
	if c.K < 1 {
		return &ErrInvalidConfig{"K", "must be >= 1"}
	}
	if c.KMax < c.K {
		return &ErrInvalidConfig{"KMax", "must be >= K"}
	}
	if c.L < 1 {
		return &ErrInvalidConfig{"L", "must be >= 1"}
	}
	if c.C < 1 {
		return &ErrInvalidConfig{"C", "must be >= 1"}
	}
	if c.Eps <= 0 {
		return &ErrInvalidConfig{"Eps", "must be > 0"}
	}
	if c.DiffThres < 0 || c.DiffThres > 1 {
		return &ErrInvalidConfig{"DiffThres", "must be in [0,1]"}
	}
	if c.DeltaSeconds < 0 {
		return &ErrInvalidConfig{"DeltaSeconds", "must be >= 0"}
	}
	if c.BufferSize == 0 {
		c.BufferSize = 3 * c.K
	}
	if c.BufferSize < c.K {
		return &ErrInvalidConfig{"BufferSize", "must be >= K"}
	}
	if c.DisclosureRingCapacity == 0 {
		c.DisclosureRingCapacity = 100
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = 4
	}
	return nil
}
