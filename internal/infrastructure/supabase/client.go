package supabase

import (
	"net/http"
	"time"

	"github.com/go-totp-verify/internal/config"
)

// NewHTTPClient returns the client used for PostgREST calls. Per-request
// deadlines come from the lookup context; the client timeout is a backstop.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout: cfg.StoreTimeout + time.Second,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        32,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
