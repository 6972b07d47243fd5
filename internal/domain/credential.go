package domain

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-totp-verify/internal/pkg/totp"
)

// Credential is a provisioned TOTP shared secret. It is owned by the external
// store; the verifier only ever holds it for the duration of one request.
// Algorithm is fixed to HMAC-SHA1, 6 digits, 30 second steps.
type Credential struct {
	UserID       string `json:"user_id"`
	SharedSecret string `json:"-"` // base32, as stored
}

// String redacts the secret.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{UserID:%q SharedSecret:[REDACTED]}", c.UserID)
}

// LogValue redacts the secret when a Credential is passed to slog.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user_id", c.UserID),
		slog.String("shared_secret", "[REDACTED]"),
	)
}

// GoString redacts the secret under %#v.
func (c Credential) GoString() string { return c.String() }

// ParseStoredCredential builds a Credential from a base32 secret as persisted
// by enrollment. A blank secret yields a Credential without key material; an
// undecodable one is reported as a store failure.
func ParseStoredCredential(userID, encoded string) (*Credential, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return &Credential{UserID: userID}, nil
	}
	if err := totp.ValidateSecret(encoded); err != nil {
		return nil, fmt.Errorf("stored secret unreadable: %v: %w", err, ErrStore)
	}
	return &Credential{UserID: userID, SharedSecret: encoded}, nil
}
