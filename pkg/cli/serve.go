package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/cardstack/pkg/cli/config"
	controller "github.com/m-mizutani/cardstack/pkg/controller/http"
	"github.com/m-mizutani/cardstack/pkg/infra/memory"
	"github.com/m-mizutani/cardstack/pkg/infra/theme"
	"github.com/m-mizutani/cardstack/pkg/usecase"
	"github.com/m-mizutani/cardstack/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		themeCfg  config.Theme
	)

	flags := append(serverCfg.Flags(), themeCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting cardstack server",
				slog.String("addr", serverCfg.Addr),
				slog.String("theme", themeCfg.Name),
			)

			palette, err := themeCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load theme")
			}

			readState, err := memory.NewReadStateStore(serverCfg.ReadStateSize)
			if err != nil {
				return goerr.Wrap(err, "failed to create read state store")
			}

			cardUC := usecase.NewCard(readState, theme.NewProvider(palette))

			server, err := controller.NewServer(
				ctx,
				cardUC,
				readState,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in background
			async.Dispatch(ctx, func(ctx context.Context) error {
				ctxlog.From(ctx).Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "HTTP server error")
				}
				return nil
			})

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
