package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-totp-verify/internal/domain"
	"github.com/go-totp-verify/internal/pkg/clock"
)

// CredentialStore looks up a user's provisioned shared secret.
// A nil credential with a nil error means the user is not enrolled.
type CredentialStore interface {
	Lookup(ctx context.Context, userID string) (*domain.Credential, error)
}

// Verifier checks a code against a base32 secret at a reference time.
type Verifier interface {
	Verify(secret, code string, at time.Time) bool
}

type Service interface {
	// Handle runs validate → lookup → verify for one request. Validation
	// failures come back as *domain.ValidationError; store and internal
	// failures wrap domain.ErrStore or domain.ErrInternal.
	Handle(ctx context.Context, in domain.RawVerificationInput) (domain.Outcome, error)
}

type ServiceDeps struct {
	Store    CredentialStore
	Verifier Verifier
	Clock    clock.Clocker
	Logger   *slog.Logger
}

type service struct {
	store    CredentialStore
	verifier Verifier
	clock    clock.Clocker
	logger   *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		store:    deps.Store,
		verifier: deps.Verifier,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *service) Handle(ctx context.Context, in domain.RawVerificationInput) (domain.Outcome, error) {
	req, err := ValidateRequest(in)
	if err != nil {
		return domain.OutcomeInvalid, err
	}

	cred, err := s.store.Lookup(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrStore) {
			err = fmt.Errorf("%w: %w", domain.ErrStore, err)
		}
		if errors.Is(err, context.Canceled) {
			s.logger.InfoContext(ctx, "credential lookup abandoned", "user_id", req.UserID)
		} else {
			s.logger.ErrorContext(ctx, "credential lookup failed", "user_id", req.UserID, "err", err)
		}
		return domain.OutcomeInvalid, err
	}
	if cred == nil {
		return domain.OutcomeNotEnrolled, nil
	}
	if cred.SharedSecret == "" {
		err := fmt.Errorf("empty shared secret on file: %w", domain.ErrInternal)
		s.logger.ErrorContext(ctx, "credential unusable", "user_id", req.UserID, "err", err)
		return domain.OutcomeInvalid, err
	}

	if s.verifier.Verify(cred.SharedSecret, req.Code, s.clock.Now()) {
		return domain.OutcomeValid, nil
	}
	return domain.OutcomeInvalid, nil
}
