package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-totp-verify/internal/config"
	"github.com/go-totp-verify/internal/transport/http/handler"
	appmiddleware "github.com/go-totp-verify/internal/transport/http/middleware"
)

const (
	HealthPath     = "/health"
	VerifyTOTPPath = "/api/verify-totp"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(appmiddleware.AssignRequestID)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Recover(logger))
	r.Use(appmiddleware.RejectUnlistedOrigins(cfg.AllowedOrigins))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	healthH := handler.NewHealthHandler(deps.Clock)
	totpH := handler.NewTOTPHandler(deps.Verification, logger)

	r.Get(HealthPath, healthH.Health)
	r.Post(VerifyTOTPPath, totpH.Verify)

	return r
}
