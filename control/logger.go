// File: control/logger.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Structured logging setup. The teacher repo logs via the standard
// library's log.Printf; this module generalizes that to zerolog (as used
// across the retrieval pack's wider corpus — DataDog-datadog-agent,
// grafana-tempo) so PublisherFailure (spec.md §7) and other operational
// events carry structured fields (cluster_id, err) instead of formatted
// strings.

package control

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a console-pretty-printed logger writing to w (os.Stdout
// if nil), at the given level. Level is a zerolog level string
// ("debug", "info", "warn", "error"); an unrecognized value falls back to
// info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}
