package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vamostennis/newsletter/internal/auth"
)

// BasicAuth returns middleware enforcing HTTP Basic Auth against the
// operator credentials. With nil credentials (no auth file) every request
// passes; the server has already logged the warning about running open.
func BasicAuth(creds *auth.Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if creds == nil {
				next.ServeHTTP(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !creds.Verify(user, pass) {
				slog.Warn("auth: rejected request",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"user", user,
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="Newsletter Builder"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","code":"AUTH001"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
