package commands

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

	"vanish/internal/app"
)

// serve: run the relay until SIGINT/SIGTERM.
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.FromEnv()
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides VANISH_ADDR)")
	return cmd
}

func runServe(cfg app.Config) error {
	w := app.NewWire(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Sweeper.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: w.Gateway.Handler(),
	}

	serverDone := make(chan error, 1)
	go func() {
		w.Log.WithField("addr", cfg.Addr).Info("relay listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- fmt.Errorf("listen on %s: %w", cfg.Addr, err)
			return
		}
		serverDone <- nil
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverDone:
		// Bind failure or other fatal listener error.
		if err != nil {
			w.Log.WithError(err).Error("server failed")
		}
		return err
	case <-quit:
	}

	w.Log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		w.Log.WithError(err).Error("forced shutdown")
		return err
	}
	w.Log.Info("relay exited; no state retained")
	return nil
}
