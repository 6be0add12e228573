package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"arbor/internal/logging"
	"arbor/internal/server"
)

// ServeCmd runs the HTTP API server
type ServeCmd struct {
	Listen string `help:"Address to listen on" default:""`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	addr := s.Listen
	if addr == "" && cli.settings != nil {
		addr = cli.settings.Listen
	}
	if addr == "" {
		addr = ":8787"
	}

	srv := server.New(addr,
		cli.Container.WorktreeService,
		cli.Container.BranchService,
		cli.Container.CommitService,
		cli.Container.FeatureService,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logging.Logger.Info("HTTP server listening", "addr", addr)
	fmt.Printf("arbor API listening on %s\n", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
