package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/nibble/internal/api/handlers"
	"github.com/abelbrown/nibble/internal/catalog"
	"github.com/abelbrown/nibble/internal/config"
	"github.com/abelbrown/nibble/internal/llm"
	"github.com/abelbrown/nibble/internal/logging"
	"github.com/abelbrown/nibble/internal/server"
	"github.com/abelbrown/nibble/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the suggestion server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

// setup loads configuration, starts logging and builds the provider
// manager. The returned cleanup closes the catalog.
func setup() (*config.Server, *llm.Manager, func(), error) {
	cfg, err := config.LoadServer()
	if err != nil {
		return nil, nil, nil, err
	}
	logging.InitWriter(os.Stderr, cfg.Environment != "development", cfg.Debug)

	cat, err := catalog.Open(catalog.DefaultDishes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	mgr := llm.NewManagerFromConfig(cfg, cat)
	return cfg, mgr, func() { cat.Close() }, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, mgr, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	sampleRate := 0.1
	if cfg.Environment == "development" {
		sampleRate = 1.0
	}
	flush := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "nibbled@" + logging.Version,
		TracesSampleRate: sampleRate,
		Debug:            cfg.Debug,
	})
	defer flush()

	active := mgr.Active()
	if active == nil {
		return llm.ErrNoProvider
	}
	logging.Info("provider selected",
		"provider", active.Name(),
		"model", active.Model(),
		"available", mgr.ListAvailable())
	if !cfg.HasAzure() && !cfg.HasOpenAI() {
		logging.Warn("no model credentials set, serving from the built-in catalog")
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: server.NewRouter(server.RouterConfig{
			SuggestHandler: handlers.NewSuggestHandler(mgr),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", "addr", srv.Addr, "version", logging.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logging.Info("server stopped")
	return nil
}
