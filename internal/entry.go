// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/api"
	"github.com/thornvik/juricore/internal/mcpserver"
	"github.com/thornvik/juricore/internal/registry"
	"github.com/thornvik/juricore/internal/shell"
	"github.com/thornvik/juricore/internal/store"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("store_path", cfg.Store.Path),
		slog.Bool("mcp_stdio", cfg.MCP.Stdio),
		slog.Bool("http_enabled", cfg.App.HTTP.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Open the read-only indexed legal corpus. A missing file is not
	// fatal: the German adapter falls back to its seed fixture (§9),
	// so the process still starts and serves a reduced corpus.
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Warn("store unavailable, adapters will use seed data", slog.String("error", err.Error()))
		s = nil
	} else {
		defer s.Close()
	}

	reg := registry.New()
	german := adapter.NewGerman(adapter.Config{
		Store:           s,
		IngestionBinary: cfg.Ingestion.BinaryPath,
		Logger:          logger,
	})
	if err := reg.Register(german); err != nil {
		return fmt.Errorf("register adapters: %w", err)
	}

	sh := shell.New(reg)

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.MCP.Stdio {
		mcpSrv := mcpserver.New(sh)
		g.Go(func() error {
			logger.Info("starting MCP stdio transport")
			if err := mcpSrv.ServeStdio(); err != nil {
				return fmt.Errorf("mcp stdio server error: %w", err)
			}
			return nil
		})
	}

	var httpServer *http.Server
	if cfg.App.HTTP.Enabled {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Mount("/api", api.NewRouter(sh, cfg.Auth.AuthEnabled(), cfg.Auth.Token))

		httpServer = &http.Server{
			Addr:    cfg.App.HTTP.Address(),
			Handler: r,
		}

		g.Go(func() error {
			logger.Info("starting HTTP transport", slog.String("address", cfg.App.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("context cancelled, initiating shutdown")
		}

		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
			}
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped successfully")
	return nil
}
