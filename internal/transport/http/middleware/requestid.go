package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-totp-verify/internal/pkg/id"
)

// AssignRequestID gives requests without an X-Request-Id a ULID and echoes
// the ID in the response. Must run before chi's RequestID, which adopts the
// header value.
func AssignRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(chimiddleware.RequestIDHeader)
		if reqID == "" {
			reqID = id.New()
			r.Header.Set(chimiddleware.RequestIDHeader, reqID)
		}
		w.Header().Set(chimiddleware.RequestIDHeader, reqID)
		next.ServeHTTP(w, r)
	})
}
