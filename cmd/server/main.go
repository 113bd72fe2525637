package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/reposelink/reposelink/internal/auth"
	"github.com/reposelink/reposelink/internal/connectivity"
	"github.com/reposelink/reposelink/internal/realtime"
	"github.com/reposelink/reposelink/internal/service"
	"github.com/reposelink/reposelink/internal/session"
	"github.com/reposelink/reposelink/internal/storage/sqlite"
	"github.com/reposelink/reposelink/pkg/logging"
)

const (
	tokenDuration = 24 * time.Hour

	// Simulated round-trip delays for the offline demo backend.
	loginLatency    = 1 * time.Second
	registerLatency = 1500 * time.Millisecond
	syncLatency     = 500 * time.Millisecond

	probeInterval = 5 * time.Second
	probeAddr     = "1.1.1.1:443"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/reposelink.db")
	addr := getEnv("LISTEN_ADDR", ":8080")
	jwtSecret := getEnv("JWT_SECRET", "dev-secret-change-me")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Durable local storage for session snapshots.
	kv, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("storage initialized", "database", dbPath)

	sessions, err := session.New(ctx, session.Config{
		KV:              kv,
		LoginLatency:    loginLatency,
		RegisterLatency: registerLatency,
	})
	if err != nil {
		slog.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}

	probe := connectivity.Dialer{Addr: probeAddr, Timeout: 2 * time.Second}
	store := realtime.New(realtime.Config{
		Probe:       probe,
		SyncLatency: syncLatency,
	})

	// If a session survived a restart, reinstall its demo dataset.
	if user := sessions.CurrentUser(); user != nil {
		store.Initialize(ctx, user.ID)
	}

	watcher := connectivity.NewWatcher(probe, probeInterval)
	watcher.Start(ctx)
	defer watcher.Stop()

	worker := realtime.NewSyncWorker(store, realtime.DefaultSyncInterval, watcher.Events(), nil)
	worker.Start(ctx)
	defer worker.Stop()

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	srv := service.NewServer(sessions, store, jwtManager, slog.Default())

	// h2c enables HTTP/2 without TLS for local clients.
	handler := h2c.NewHandler(srv.Router(), &http2.Server{})
	httpServer := &http.Server{Addr: addr, Handler: handler}

	go func() {
		slog.Info("server starting", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
	}
}
