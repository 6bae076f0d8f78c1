// File: engine/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import "errors"

// ErrClosed is returned by Anonymize after Shutdown has drained the
// engine; the engine is not restartable.
var ErrClosed = errors.New("engine: anonymize called after shutdown")
