package otel

import (
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("NIBBLE_TRACE") != "")
}

// TraceEnabled reports whether NIBBLE_TRACE was set at startup. When it is,
// the app emits a trace event for every Bubble Tea message it receives.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
