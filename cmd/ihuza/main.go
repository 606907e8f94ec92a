// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/handler"
	"github.com/ihuza/ihuza-go/internal/identity"
	"github.com/ihuza/ihuza-go/internal/inventory"
	"github.com/ihuza/ihuza-go/internal/logging"
	"github.com/ihuza/ihuza-go/internal/middleware"
	"github.com/ihuza/ihuza-go/internal/store"
	"github.com/ihuza/ihuza-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		fmt.Printf("ihuza %s (%s, built %s)\n", info.Version, info.GitCommit, info.BuildTime)
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := parseLogLevel(cfg.LogLevel)
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(baseHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return err
	}

	st := store.New(db)

	// Mirror WARN+ records (denials, failed logins) into the audit trail.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(baseHandler, st)))

	ids, err := identity.New(st, cfg)
	if err != nil {
		return err
	}

	inv, err := inventory.New(st, cfg, ids)
	if err != nil {
		return err
	}

	restored, ok := ids.Restore()
	if ok {
		slog.Info("restored principal", "email", restored.Account.Email)
	}

	h := handler.New(ids, inv, st, cfg, restored)
	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      h.Routes(lp),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
