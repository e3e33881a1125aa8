package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpSrv "github.com/jmehdipour/email-tracker/internal/http"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.close(); err != nil {
				a.log.Warn("close store", zap.Error(err))
			}
		}()

		server := httpSrv.NewServer(a.cfg, a.svc, a.log)

		errCh := make(chan error, 1)
		go func() {
			a.log.Info("starting http",
				zap.String("addr", a.cfg.HTTP.Addr),
				zap.String("environment", a.cfg.App.Environment),
				zap.String("store", a.cfg.Store.Driver),
				zap.Strings("tenants", a.cfg.Tracking.Tenants),
			)
			errCh <- server.Start(a.cfg.HTTP.Addr)
		}()

		var runErr error
		select {
		case <-ctx.Done():
			a.log.Info("signal received, shutting down")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				runErr = fmt.Errorf("http server exited: %w", err)
			}
		}

		timeout := a.cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("http shutdown", zap.Error(err))
		}

		return runErr
	},
}
