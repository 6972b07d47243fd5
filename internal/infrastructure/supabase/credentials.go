package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-totp-verify/internal/config"
	"github.com/go-totp-verify/internal/domain"
	"github.com/jackc/pgerrcode"
)

// maxResponseBytes bounds how much of a PostgREST response is read.
const maxResponseBytes = 64 << 10

// CredentialRepo reads provisioned TOTP secrets through the Supabase REST
// (PostgREST) interface using the service-role key.
// Table layout: user_id (PK), secret (base32 text).
type CredentialRepo struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	tableName  string
	timeout    time.Duration
}

func NewCredentialRepo(httpClient *http.Client, cfg *config.Config) *CredentialRepo {
	return &CredentialRepo{
		httpClient: httpClient,
		baseURL:    cfg.SupabaseURL,
		apiKey:     cfg.SupabaseServiceRoleKey,
		tableName:  cfg.CredentialTable,
		timeout:    cfg.StoreTimeout,
	}
}

type secretRow struct {
	Secret *string `json:"secret"`
}

// postgrestError is PostgREST's error body. For database errors Code carries
// the Postgres SQLSTATE, so pgerrcode constants apply to it directly.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lookup returns the user's credential, or nil when no row exists.
func (r *CredentialRepo) Lookup(ctx context.Context, userID string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("select", "secret")
	q.Set("user_id", "eq."+userID)
	q.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", r.baseURL, url.PathEscape(r.tableName), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %v: %w", err, domain.ErrStore)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", r.tableName, domain.ErrStore, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w: %w", r.tableName, domain.ErrStore, err)
	}

	if resp.StatusCode != http.StatusOK {
		var pe postgrestError
		if json.Unmarshal(body, &pe) == nil && pe.Code == pgerrcode.InvalidTextRepresentation {
			// user_id cannot be cast to the column type, e.g. a non-UUID against a uuid column.
			return nil, nil
		}
		return nil, fmt.Errorf("query %s: status %d code %q: %s: %w",
			r.tableName, resp.StatusCode, pe.Code, pe.Message, domain.ErrStore)
	}

	var rows []secretRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s response: unexpected shape: %w", r.tableName, domain.ErrStore)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if rows[0].Secret == nil {
		return &domain.Credential{UserID: userID}, nil
	}
	return domain.ParseStoredCredential(userID, *rows[0].Secret)
}
