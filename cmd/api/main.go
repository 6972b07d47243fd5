package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-totp-verify/internal/application/verification"
	"github.com/go-totp-verify/internal/config"
	"github.com/go-totp-verify/internal/infrastructure/credstore"
	"github.com/go-totp-verify/internal/pkg/clock"
	"github.com/go-totp-verify/internal/pkg/totp"
	transporthttp "github.com/go-totp-verify/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup; main is the only caller of os.Exit.
func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	engine, err := totp.NewEngine(cfg.TOTPWindow)
	if err != nil {
		logger.Error("invalid TOTP_WINDOW, using default", "value", cfg.TOTPWindow, "err", err)
		engine = totp.Default()
	}

	// The store is optional at startup: without it verification answers 500
	// while /health keeps serving.
	store, closeStore := credstore.Open(context.Background(), cfg, logger)
	defer closeStore()

	sysClock := clock.New()
	svc := verification.NewService(verification.ServiceDeps{
		Store:    store,
		Verifier: engine,
		Clock:    sysClock,
		Logger:   logger,
	})

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Verification: svc,
		Clock:        sysClock,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server starting",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"frontend_url", cfg.FrontendURL,
		"health", fmt.Sprintf("http://localhost:%s%s", cfg.AppPort, transporthttp.HealthPath),
		"store_driver", cfg.StoreDriver,
		"totp_window", engine.Window(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, logger)
}

// serve runs srv until ctx is done or the listener fails, then shuts it down.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newLogger builds the JSON logger. Unknown levels fall back to info.
func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
