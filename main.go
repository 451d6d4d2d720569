// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/sgformer/cliparse"
	"github.com/danielhkuo/sgformer/db"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/router"
	"github.com/danielhkuo/sgformer/snapshot"
	"github.com/danielhkuo/sgformer/store"
	"github.com/danielhkuo/sgformer/templates"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Warn("ignoring .env file", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Open storage
	st, persist, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("storage setup failed", "backend", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Storage ready", "backend", cfg.DatabaseType)

	// Mail delivery
	mailCfg, err := notify.LoadConfigFromEnv()
	if err != nil {
		slog.Error("invalid mail settings", "error", err)
		os.Exit(1)
	}
	if cfg.NotifyAdminEmail == "" {
		cfg.NotifyAdminEmail = mailCfg.AdminEmail
	}
	mailer, err := notify.NewMailer(mailCfg)
	if err != nil {
		slog.Error("mailer setup failed", "error", err)
		os.Exit(1)
	}

	// Create router
	handler, err := router.NewRouter(st, cfg, mailer)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(&server, ln, ctrlc, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	if err := persist(); err != nil {
		slog.Error("failed to save state", "error", err)
	}
}

// serve runs server on ln until stop fires, then drains in-flight requests
// for at most timeout. It returns only once Shutdown has finished, so the
// caller may save state and close the store afterwards.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := server.Shutdown(ctx)
		if err != nil {
			slog.Warn("graceful shutdown incomplete", "error", err)
			server.Close()
		}
		done <- err
	}()

	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

// openStore returns the configured backend and a function that saves its
// state at shutdown
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, func() error, error) {
	seed := templates.SeedForms(cfg.AdminEmail, time.Now().UTC())
	if !cfg.SeedForms {
		seed = nil
	}

	if cfg.DatabaseType == cliparse.BackendMemory {
		m := store.NewMemory()
		if cfg.StateFile == "" {
			m.Load(seed, nil, nil)
			return m, func() error { return nil }, nil
		}
		snapshot.Restore(m, cfg.StateFile, seed)
		return m, func() error { return snapshot.Persist(m, cfg.StateFile) }, nil
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	s := store.NewSQL(conn, dialect)
	if err := seedIfEmpty(ctx, s, seed); err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}

func seedIfEmpty(ctx context.Context, s store.Store, seed []models.Form) error {
	existing, err := s.ListForms(ctx)
	if err != nil {
		return fmt.Errorf("list forms: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, f := range seed {
		if err := s.CreateForm(ctx, f); err != nil {
			return fmt.Errorf("seed form %s: %w", f.ID, err)
		}
	}
	slog.Info("seed forms created", "count", len(seed))
	return nil
}
