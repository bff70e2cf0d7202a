package autocomplete

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultDelay is the quiet period before a search is requested.
	DefaultDelay = 150 * time.Millisecond
	// DefaultInstantMaxLen is the longest input that skips the delay.
	DefaultInstantMaxLen = 2
)

// Fired is the debouncer's own tick. Only the one matching the latest
// Input call is reported by Update.
type Fired struct {
	ID   int
	Text string
}

// Debouncer turns a stream of text changes into search decisions. Short
// inputs are searched at once; anything longer waits for Delay of silence,
// and each new input voids the pending one.
//
// Decisions are returned to the caller rather than sent as messages, so a
// search always runs inside the Update that made it and two quick edits
// cannot reach the controller out of order.
type Debouncer struct {
	Delay         time.Duration
	InstantMaxLen int

	seq int
}

// NewDebouncer returns a Debouncer. Non-positive values fall back to the defaults.
func NewDebouncer(delay time.Duration, instantMaxLen int) Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if instantMaxLen <= 0 {
		instantMaxLen = DefaultInstantMaxLen
	}
	return Debouncer{Delay: delay, InstantMaxLen: instantMaxLen}
}

// Input records a text change. When now is true the caller must search
// text immediately; otherwise cmd is the tick to schedule.
func (d Debouncer) Input(text string) (_ Debouncer, cmd tea.Cmd, now bool) {
	d.seq++
	if utf8.RuneCountInString(text) <= d.InstantMaxLen {
		return d, nil, true
	}
	id := d.seq
	return d, tea.Tick(d.Delay, func(time.Time) tea.Msg {
		return Fired{ID: id, Text: text}
	}), false
}

// Update reports the text of a current Fired tick. Stale ticks and other
// messages report ok == false.
func (d Debouncer) Update(msg tea.Msg) (_ Debouncer, text string, ok bool) {
	f, isTick := msg.(Fired)
	if !isTick || f.ID != d.seq {
		return d, "", false
	}
	return d, f.Text, true
}

// Cancel voids any pending tick.
func (d Debouncer) Cancel() Debouncer {
	d.seq++
	return d
}
