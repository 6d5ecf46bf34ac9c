package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/server"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/stream"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query/control API and the websocket scene stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	return cmd
}

// commandHandler applies websocket control messages to the session.
func commandHandler(mgr *session.Manager) stream.CommandFunc {
	return func(c stream.Command) error {
		switch c.Op {
		case "toggle":
			_, err := mgr.Toggle(c.Index)
			return err
		case "sizes":
			return mgr.RebuildVisualSizes(c.Min, c.Max)
		default:
			return fmt.Errorf("unknown command %q", c.Op)
		}
	}
}

func runServe(ctx context.Context, opts *rootOptions, port int) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	if port != 0 {
		a.cfg.HTTP.Port = port
		if err := a.cfg.HTTP.Validate(); err != nil {
			return fmt.Errorf("invalid port: %w", err)
		}
	}
	logger := a.logger.Slog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scene := render.NewScene()

	var mgr *session.Manager
	hub := stream.NewHub(scene.Snapshot, logger, stream.WithCommandHandler(func(c stream.Command) error {
		return commandHandler(mgr)(c)
	}))
	defer hub.Close()

	mgr, err = a.newSession(render.Multi{scene, hub})
	if err != nil {
		return err
	}

	res, err := a.loadCatalog()
	if err != nil {
		return err
	}
	for _, e := range mgr.Reload(res) {
		logger.Warn("place star failed", slog.String("error", e.Error()))
	}

	routerOpts := server.Options{
		Scene:    scene.Snapshot,
		Stream:   hub,
		Gatherer: a.registry,
		Logger:   logger,
	}
	if obs, ok := a.cfg.Observer.Site(); ok {
		routerOpts.Observer = &obs
	}
	router := server.NewRouter(mgr, routerOpts)

	httpServer := &http.Server{
		Addr:              a.cfg.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if a.cfg.Catalog.Watch {
		g.Go(func() error {
			return catalog.Watch(gCtx, a.cfg.Catalog.Path, a.format, logger, func(res *catalog.Result) {
				for _, e := range mgr.Reload(res) {
					logger.Warn("reload: place star failed", slog.String("error", e.Error()))
				}
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", a.cfg.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
