package http

import (
	"log/slog"

	"github.com/go-totp-verify/internal/application/verification"
	"github.com/go-totp-verify/internal/pkg/clock"
)

// Deps holds what the router needs to build its handlers.
type Deps struct {
	Verification verification.Service
	// Clock stamps health responses. Defaults to the system clock.
	Clock  clock.Clocker
	Logger *slog.Logger
}
