package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tanish-jain-225/SilverCare-AI/internal/api"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli"
	"github.com/tanish-jain-225/SilverCare-AI/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel,
	})

	a, err := app.Open(cfg, logger, metrics.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	cliApp := &cli.App{
		Reminders: a.Reminders,
		Sessions:  a.Sessions,
		News:      a.News,
	}
	if assistant, err := a.Assistant(); err == nil {
		cliApp.Assistant = assistant
	}

	// Detect interactive terminal for forms and the chat shell.
	cliApp.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	cliApp.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.Addr
		}
		return serve(ctx, logger, addr, api.FromApp(a, prometheus.DefaultGatherer).Handler())
	}

	return cli.NewRootCmd(cliApp).Execute()
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, logger *log.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
