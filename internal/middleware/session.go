package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rodastrial/sitedesk/internal/session"
)

// Sessions resolves the session cookie of each request and stores the
// resulting *session.Handle in the request context.
func Sessions(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := m.Load(w, r)
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), h)))
		})
	}
}

// RequireAdmin rejects requests whose session is not privileged with
// 401 and a JSON error body. It must run after Sessions.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not logged in"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
