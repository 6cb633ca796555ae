package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/playstats/internal/ingestion"
	"github.com/aevon-lab/playstats/internal/projection"
	"github.com/aevon-lab/playstats/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			manager, err := openManager(ctx)
			if err != nil {
				return err
			}

			ingestion.RegisterMetrics()

			srv := server.New(cfg.Server.Addr(), manager, cfg.Server.Mode)
			ingestion.NewService(manager, cfg.Server.MaxBodySizeMB).RegisterRoutes(srv.Engine)
			projection.NewHandler(manager).RegisterRoutes(srv.Engine)

			g, gctx := errgroup.WithContext(ctx)

			// HTTP server blocks until gctx is cancelled.
			g.Go(func() error {
				return srv.Run(gctx)
			})

			// Drain the writer once the server is gone.
			g.Go(func() error {
				<-gctx.Done()
				slog.Info("Signal received, shutting down...")

				timeout := cfg.Ingestion.EffectiveCloseTimeout()
				closeCtx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				if err := manager.CloseContext(closeCtx); err != nil {
					slog.Error("Play store did not drain in time", "timeout", timeout, "error", err)
					return err
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				slog.Error("Server stopped with error", "error", err)
				return err
			}

			slog.Info("Shutdown complete")
			return nil
		},
	}
}
