package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/abelbrown/nibble/internal/logging"
	"github.com/abelbrown/nibble/internal/otel"
	"github.com/abelbrown/nibble/internal/suggest"
	"github.com/abelbrown/nibble/internal/ui/autocomplete"
)

// maxExamples is how many examples get a function key (f1..f9).
const maxExamples = 9

// AppConfig holds everything the App needs from main.
type AppConfig struct {
	// Context is cancelled when the program exits; fetches inherit it.
	Context context.Context

	Fetcher autocomplete.Fetcher
	// Health, when set, is probed once at startup for the status bar.
	Health func(ctx context.Context) (*suggest.Health, error)

	Debounce      time.Duration
	InstantMaxLen int
	ErrorTimeout  time.Duration

	Examples []string
	APIURL   string

	Events *otel.Logger
	Ring   *otel.RingBuffer
}

// App is the root Bubble Tea model: one text field with a suggestion dropdown.
// IMPORTANT: App does NOT do I/O itself. Fetches run as commands and report
// back through messages.
type App struct {
	ctx    context.Context
	health func(ctx context.Context) (*suggest.Health, error)

	input      textinput.Model
	spinner    spinner.Model
	debouncer  autocomplete.Debouncer
	controller autocomplete.Controller

	examples []string
	apiURL   string
	service  *suggest.Health
	offline  error

	events *otel.Logger
	ring   *otel.RingBuffer

	width        int
	height       int
	ready        bool
	debugVisible bool

	chosen string
}

// NewApp creates an App from cfg.
func NewApp(cfg AppConfig) App {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Start typing what you ate..."
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	examples := cfg.Examples
	if len(examples) > maxExamples {
		examples = examples[:maxExamples]
	}

	return App{
		ctx:       ctx,
		health:    cfg.Health,
		input:     ti,
		spinner:   sp,
		debouncer: autocomplete.NewDebouncer(cfg.Debounce, cfg.InstantMaxLen),
		controller: autocomplete.NewController(autocomplete.ControllerConfig{
			Context:      ctx,
			Fetcher:      cfg.Fetcher,
			ErrorTimeout: cfg.ErrorTimeout,
			Events:       cfg.Events,
		}),
		examples: examples,
		apiURL:   cfg.APIURL,
		events:   cfg.Events,
		ring:     cfg.Ring,
		width:    80,
	}
}

// Init starts the cursor blink, the spinner and the health probe.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, a.spinner.Tick}
	if a.health != nil {
		probe, ctx := a.health, a.ctx
		cmds = append(cmds, func() tea.Msg {
			h, err := probe(ctx)
			return HealthChecked{Health: h, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.traceMsg(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(msg.Width-8, 10)
		a.ready = true
		return a, nil

	case autocomplete.Fired:
		var text string
		var ok bool
		a.debouncer, text, ok = a.debouncer.Update(msg)
		if !ok {
			return a, nil
		}
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDebounceFire, Comp: "debouncer", Term: text})
		var cmd tea.Cmd
		a.controller, cmd = a.controller.Search(text)
		return a, cmd

	case autocomplete.SuggestionsLoaded:
		var cmd tea.Cmd
		a.controller, cmd = a.controller.Update(msg)
		return a, cmd

	case autocomplete.SuggestionSelected:
		a.input.SetValue(msg.Text)
		a.input.CursorEnd()
		return a, a.input.Focus()

	case HealthChecked:
		if msg.Err != nil {
			logging.Warn("health check failed", "url", a.apiURL, "error", msg.Err)
		}
		a.service = msg.Health
		a.offline = msg.Err
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Error expiry and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.controller, cmd = a.controller.Update(msg)
	cmds = append(cmds, cmd)
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "app", Msg: key})

	switch key {
	case "ctrl+c":
		a.chosen = ""
		return a, tea.Quit

	case "ctrl+o":
		a.debugVisible = !a.debugVisible
		return a, nil

	case "up", "down", "enter", "esc":
		if a.controller.Open() {
			var cmd tea.Cmd
			a.controller, cmd = a.controller.Update(msg)
			return a, cmd
		}
		if key == "enter" {
			return a.accept()
		}
		if key == "esc" && a.debugVisible {
			a.debugVisible = false
		}
		return a, nil
	}

	if n, ok := exampleKey(key); ok {
		if n <= len(a.examples) {
			return a.runExample(a.examples[n-1])
		}
		return a, nil
	}

	before := a.input.Value()
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	if value := a.input.Value(); value != before {
		var now bool
		a.debouncer, cmd, now = a.debouncer.Input(value)
		if now {
			a.controller, cmd = a.controller.Search(value)
		}
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// accept ends the session with the current input as the result.
func (a App) accept() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.input.Value())
	if value == "" {
		return a, nil
	}
	a.chosen = value
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSelect, Comp: "app", Term: value, Msg: "accepted"})
	return a, tea.Quit
}

// runExample fills the input with an example and searches it right away.
func (a App) runExample(example string) (tea.Model, tea.Cmd) {
	text := strings.ReplaceAll(example, `"`, "")
	a.input.SetValue(text)
	a.input.CursorEnd()
	a.debouncer = a.debouncer.Cancel()
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindExample, Comp: "app", Term: text})

	var cmd tea.Cmd
	a.controller, cmd = a.controller.Search(text)
	return a, cmd
}

// exampleKey maps "f1".."f9" to 1..9.
func exampleKey(key string) (int, bool) {
	if len(key) != 2 || key[0] != 'f' || key[1] < '1' || key[1] > '9' {
		return 0, false
	}
	return int(key[1] - '0'), true
}

func (a App) traceMsg(msg tea.Msg) {
	if _, ok := msg.(spinner.TickMsg); ok {
		return
	}
	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "app", Msg: fmt.Sprintf("%T", msg)})
}

// View renders the UI.
func (a App) View() string {
	if a.debugVisible && a.ring != nil {
		return debugOverlay(a.ring, a.width, a.height) + "\n" + debugStatusBar(a.width)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("nibble"))
	b.WriteString(SubtitleStyle.Render("dish suggestions as you type"))
	b.WriteString("\n")

	field := a.input.View()
	if a.controller.Loading() {
		field += " " + a.spinner.View()
	}
	b.WriteString(InputBox.Width(max(a.width-4, 20)).Render(field))
	b.WriteString("\n")

	if dropdown := a.controller.View(a.width); dropdown != "" {
		b.WriteString(dropdown)
		b.WriteString("\n")
	}

	if len(a.examples) > 0 {
		b.WriteString(a.renderExamples())
		b.WriteString("\n")
	}

	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderExamples() string {
	var lines []string
	lines = append(lines, HelpStyle.Render("Try an example:"))
	for i, ex := range a.examples {
		text := ansi.Truncate(strings.ReplaceAll(ex, `"`, ""), max(a.width-12, 10), "…")
		lines = append(lines, "  "+ExampleKey.Render(fmt.Sprintf("f%d", i+1))+" "+ExampleText.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderStatusBar() string {
	var state string
	switch {
	case a.offline != nil:
		state = StatusOffline.Render("● offline")
	case a.service != nil:
		state = StatusOnline.Render("●") + StatusBarText.Render(" "+a.service.AIProvider)
		if a.service.Model != "" {
			state += StatusBarText.Render(" · " + a.service.Model)
		}
	default:
		state = StatusBarText.Render("○ " + a.apiURL)
	}

	keys := StatusBarKey.Render("↑↓") + StatusBarText.Render(" navigate  ") +
		StatusBarKey.Render("enter") + StatusBarText.Render(" select  ") +
		StatusBarKey.Render("esc") + StatusBarText.Render(" close  ") +
		StatusBarKey.Render("ctrl+c") + StatusBarText.Render(" quit")

	return StatusBar.Width(a.width).Render(state + "  " + keys)
}

// Chosen returns the accepted value, or "" if the user quit without one.
func (a App) Chosen() string {
	return a.chosen
}

// Value returns the current input text (for testing).
func (a App) Value() string {
	return a.input.Value()
}

// Controller returns the suggestion controller (for testing).
func (a App) Controller() autocomplete.Controller {
	return a.controller
}
