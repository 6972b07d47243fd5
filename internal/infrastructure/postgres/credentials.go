package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-totp-verify/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the repo needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialRepo reads provisioned TOTP secrets directly from the user_2fa
// table. Table layout: user_id (PK), secret (base32 text).
type CredentialRepo struct {
	db      Querier
	query   string
	timeout time.Duration
}

func NewCredentialRepo(db Querier, tableName string, timeout time.Duration) *CredentialRepo {
	return &CredentialRepo{
		db:      db,
		query:   fmt.Sprintf("SELECT secret FROM %s WHERE user_id = $1 LIMIT 1", pgx.Identifier{tableName}.Sanitize()),
		timeout: timeout,
	}
}

// Lookup returns the user's credential, or nil when no row exists.
func (r *CredentialRepo) Lookup(ctx context.Context, userID string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var secret *string
	err := r.db.QueryRow(ctx, r.query, userID).Scan(&secret)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		// not a valid uuid, so no row can match
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select secret: %w: %w", domain.ErrStore, err)
	}

	if secret == nil {
		return &domain.Credential{UserID: userID}, nil
	}
	return domain.ParseStoredCredential(userID, *secret)
}
