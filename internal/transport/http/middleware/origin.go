package middleware

import (
	"net/http"
	"strings"
)

// RejectUnlistedOrigins answers 403 when a request carries an Origin header
// that is not in allowed. Requests without Origin (curl, server-to-server)
// pass through. go-chi/cors only withholds headers for unlisted origins, so
// this runs in front of it to refuse them outright.
func RejectUnlistedOrigins(allowed []string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := set[strings.TrimRight(origin, "/")]; !ok {
				writeJSONError(w, http.StatusForbidden, "Not allowed by CORS")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
