// Package autocomplete holds the input-to-suggestion pipeline: a debouncer
// that rate-limits keystrokes and a controller that fetches, discards stale
// results and drives the dropdown's keyboard state.
package autocomplete

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/nibble/internal/logging"
	"github.com/abelbrown/nibble/internal/otel"
	"github.com/abelbrown/nibble/internal/suggest"
)

// DefaultErrorTimeout is how long an error row stays visible.
const DefaultErrorTimeout = 3000 * time.Millisecond

// ErrorText is shown in the dropdown when a current search fails.
const ErrorText = "Unable to fetch suggestions. Please check your connection."

const noActive = -1

// Fetcher returns suggestions for a term. *suggest.Client implements it.
type Fetcher interface {
	Suggest(ctx context.Context, text string) ([]string, error)
}

// SuggestionsLoaded carries the outcome of one fetch back into Update.
type SuggestionsLoaded struct {
	Term        string
	QueryID     string
	Suggestions []string
	Err         error
	Dur         time.Duration
}

// SuggestionSelected is emitted when the user picks a suggestion.
type SuggestionSelected struct {
	Text string
}

type errorExpired struct {
	seq int
}

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	// Context is the parent of every fetch. Cancelling it aborts in-flight calls.
	Context      context.Context
	Fetcher      Fetcher
	ErrorTimeout time.Duration
	Events       *otel.Logger
}

// Controller owns the current search and the dropdown state.
type Controller struct {
	ctx          context.Context
	fetcher      Fetcher
	errorTimeout time.Duration
	events       *otel.Logger

	lastTerm string
	qid      string
	loading  bool

	open        bool
	suggestions []string
	active      int

	errMsg string
	errSeq int
}

// NewController builds a Controller from cfg.
func NewController(cfg ControllerConfig) Controller {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.ErrorTimeout
	if timeout <= 0 {
		timeout = DefaultErrorTimeout
	}
	return Controller{
		ctx:          ctx,
		fetcher:      cfg.Fetcher,
		errorTimeout: timeout,
		events:       cfg.Events,
		active:       noActive,
	}
}

// Search starts a lookup for text. Blank text resets the controller; a
// repeat of the last term does nothing.
func (c Controller) Search(text string) (Controller, tea.Cmd) {
	term := strings.TrimSpace(text)

	if term == "" {
		c.clear()
		c.lastTerm = ""
		c.emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSearchClear})
		return c, nil
	}

	if term == c.lastTerm {
		c.emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSearchDedup, QueryID: c.qid, Term: term})
		return c, nil
	}

	c.lastTerm = term
	c.qid = newQueryID()
	c.loading = true
	c.emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSearchStart, QueryID: c.qid, Term: term})
	logging.Debug("search", "qid", c.qid, "term", term)

	return c, c.fetch(term, c.qid)
}

func (c Controller) fetch(term, qid string) tea.Cmd {
	ctx := suggest.WithRequestID(c.ctx, qid)
	fetcher := c.fetcher
	return func() tea.Msg {
		if fetcher == nil {
			return SuggestionsLoaded{Term: term, QueryID: qid, Err: errors.New("autocomplete: no fetcher configured")}
		}
		start := time.Now()
		s, err := fetcher.Suggest(ctx, term)
		return SuggestionsLoaded{
			Term:        term,
			QueryID:     qid,
			Suggestions: s,
			Err:         err,
			Dur:         time.Since(start),
		}
	}
}

// Update handles fetch results, error expiry and navigation keys.
func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case SuggestionsLoaded:
		return c.loaded(msg)

	case errorExpired:
		if msg.seq == c.errSeq && c.errMsg != "" {
			c.errMsg = ""
			if len(c.suggestions) == 0 {
				c.open = false
			}
		}
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return c, nil
}

func (c Controller) loaded(msg SuggestionsLoaded) (Controller, tea.Cmd) {
	// The indicator tracks any settled call, current or not.
	c.loading = false

	if msg.Term != c.lastTerm {
		c.emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSearchStale, QueryID: msg.QueryID, Term: msg.Term, Dur: msg.Dur})
		return c, nil
	}

	if msg.Err != nil {
		logging.Error("failed to fetch suggestions", "qid", msg.QueryID, "term", msg.Term, "error", msg.Err)
		c.emit(otel.Event{Level: otel.LevelError, Kind: otel.KindSearchError, QueryID: msg.QueryID, Term: msg.Term, Dur: msg.Dur, Err: msg.Err.Error()})
		c.suggestions = nil
		c.active = noActive
		c.open = true
		c.errMsg = ErrorText
		c.errSeq++
		seq := c.errSeq
		return c, tea.Tick(c.errorTimeout, func(time.Time) tea.Msg {
			return errorExpired{seq: seq}
		})
	}

	c.emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSearchComplete, QueryID: msg.QueryID, Term: msg.Term, Count: len(msg.Suggestions), Dur: msg.Dur})
	c.errMsg = ""
	c.suggestions = msg.Suggestions
	c.active = noActive
	c.open = len(msg.Suggestions) > 0
	return c, nil
}

func (c Controller) handleKey(msg tea.KeyMsg) (Controller, tea.Cmd) {
	if !c.open {
		return c, nil
	}

	key := msg.String()
	if key == "esc" {
		c.open = false
		c.active = noActive
		return c, nil
	}

	if len(c.suggestions) == 0 {
		return c, nil
	}
	last := len(c.suggestions) - 1

	switch key {
	case "down":
		if c.active == noActive {
			c.active = 0
		} else {
			c.active = min(c.active+1, last)
		}
	case "up":
		if c.active == noActive {
			c.active = 0
		} else {
			c.active = max(c.active-1, 0)
		}
	case "enter":
		if c.active == noActive {
			return c, nil
		}
		return c.SelectSuggestion(c.suggestions[c.active])
	}
	return c, nil
}

// SelectSuggestion closes the dropdown and emits SuggestionSelected. The
// current search ends here.
func (c Controller) SelectSuggestion(text string) (Controller, tea.Cmd) {
	c.open = false
	c.active = noActive
	c.emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSelect, QueryID: c.qid, Term: text})
	return c, func() tea.Msg {
		return SuggestionSelected{Text: text}
	}
}

// Close hides the dropdown without touching the current search.
func (c *Controller) Close() {
	c.open = false
	c.active = noActive
}

func (c *Controller) clear() {
	c.suggestions = nil
	c.active = noActive
	c.open = false
	c.errMsg = ""
}

func (c Controller) emit(e otel.Event) {
	e.Comp = "controller"
	c.events.Emit(e)
}

// Open reports whether the dropdown is showing.
func (c Controller) Open() bool { return c.open }

// Loading reports whether a fetch is in flight. Any settled call clears it.
func (c Controller) Loading() bool { return c.loading }

// Suggestions returns the rendered list.
func (c Controller) Suggestions() []string { return c.suggestions }

// Active returns the highlighted index, or -1 when none is.
func (c Controller) Active() int { return c.active }

// ErrorMessage returns the transient error row text, if any.
func (c Controller) ErrorMessage() string { return c.errMsg }

// LastTerm returns the most recently requested term.
func (c Controller) LastTerm() string { return c.lastTerm }

// QueryID returns the correlation id of the most recent search.
func (c Controller) QueryID() string { return c.qid }

func newQueryID() string {
	return uuid.NewString()[:8]
}
