package credstore

import (
	"context"
	"fmt"

	"github.com/go-totp-verify/internal/domain"
)

// Unavailable is installed when the configured store cannot be used. Every
// lookup fails with domain.ErrStoreUnavailable.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Lookup(context.Context, string) (*domain.Credential, error) {
	return nil, fmt.Errorf("%s: %w", u.Reason, domain.ErrStoreUnavailable)
}
