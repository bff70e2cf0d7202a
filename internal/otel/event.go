// Package otel records what the suggestion pipeline did, one JSONL line per event.
//
// Events are written asynchronously so the Bubble Tea update loop never blocks
// on disk. A RingBuffer can be attached to keep the most recent events in
// memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level is an event's severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind is dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Search lifecycle, keyed by qid
	KindSearchStart    EventKind = "search.start"
	KindSearchDedup    EventKind = "search.dedup"
	KindSearchClear    EventKind = "search.clear"
	KindSearchComplete EventKind = "search.complete"
	KindSearchStale    EventKind = "search.stale"
	KindSearchError    EventKind = "search.error"

	KindDebounceFire EventKind = "debounce.fire"

	// UI
	KindKeyPress EventKind = "ui.key"
	KindSelect   EventKind = "ui.select"
	KindExample  EventKind = "ui.example"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"

	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is one line of the event log. Only Kind is required.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "controller", "debouncer", "app", "main"
	SessionID string         `json:"session_id,omitempty"`
	QueryID   string         `json:"qid,omitempty"`
	Term      string         `json:"term,omitempty"`
	Count     int            `json:"count,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON fills DurMs from Dur.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	p := plain(e)
	if e.Dur > 0 {
		p.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(p)
}
