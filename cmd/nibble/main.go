package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abelbrown/nibble/internal/config"
	"github.com/abelbrown/nibble/internal/logging"
	"github.com/abelbrown/nibble/internal/otel"
	"github.com/abelbrown/nibble/internal/suggest"
	"github.com/abelbrown/nibble/internal/ui"
)

// skipConfigLoad marks commands that must run even when the config file
// cannot be parsed.
const skipConfigLoad = "nibble/skip-config-load"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd binds flags to the defaults and reads the config file only once
// cobra has picked the command to run.
func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "nibble",
		Short: "Food autocomplete for the terminal",
		Long: `nibble asks a suggestion service for dish names as you type and prints
the value you accept, so it can be used in pipelines:

  entry=$(nibble) && echo "logged: $entry"

Environment variables:
  NIBBLE_API_URL   suggestion service URL (default: http://localhost:3000)
  NIBBLE_TRACE     set to 1 to record every UI message in the event log`,
		Version:       logging.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfigLoad] != "" {
				return nil
			}
			loaded, err := config.Load(config.ConfigPath())
			if err != nil {
				return err
			}
			cfg.Merge(loaded, cmd.Flags())
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd.Context(), cfg)
		},
	}
	cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(suggestCmd(cfg))
	rootCmd.AddCommand(healthCmd(cfg))
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(configCmd(cfg))
	return rootCmd
}

// runPicker draws on stderr so stdout carries only the accepted value.
func runPicker(parent context.Context, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return fmt.Errorf("the interactive picker needs a terminal; use 'nibble suggest' in scripts")
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	dataDir := config.DataDir()
	if err := logging.Init(dataDir); err != nil {
		return err
	}
	defer logging.Close()

	events, closeEvents := openEventLog(dataDir)
	defer closeEvents()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main", Msg: cfg.APIURL})

	client := suggest.New(cfg.APIURL)
	app := ui.NewApp(ui.AppConfig{
		Context:       ctx,
		Fetcher:       client,
		Health:        client.Health,
		Debounce:      cfg.Debounce(),
		InstantMaxLen: cfg.InstantMaxLen,
		ErrorTimeout:  cfg.ErrorTimeout(),
		Examples:      cfg.Examples,
		APIURL:        client.BaseURL(),
		Events:        events,
		Ring:          ring,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := program.Run()
	cancel()
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main"})
	if err != nil {
		logging.Error("program exited", "err", err)
		return err
	}

	if m, ok := final.(ui.App); ok && m.Chosen() != "" {
		fmt.Println(m.Chosen())
	}
	return nil
}

// openEventLog appends to ~/.nibble/events.jsonl. The picker still runs
// when the file cannot be opened; events are then discarded.
func openEventLog(dataDir string) (*otel.Logger, func()) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logging.Warn("event log disabled", "err", err)
		l := otel.NewNullLogger()
		return l, l.Close
	}
	f, err := os.OpenFile(eventLogPath(dataDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("event log disabled", "err", err)
		l := otel.NewNullLogger()
		return l, l.Close
	}
	l := otel.NewLogger(f)
	return l, func() {
		l.Close()
		f.Close()
	}
}

func eventLogPath(dataDir string) string {
	return filepath.Join(dataDir, "events.jsonl")
}
