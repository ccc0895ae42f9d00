package middleware

import (
	"net/http"

	"github.com/profiledesk/backend/internal/auth"
)

// AdminAuth protects the operator surface. The credential is re-validated on
// every request; there is no session to establish or expire.
type AdminAuth struct {
	gate *auth.Gate
}

func NewAdminAuth(gate *auth.Gate) *AdminAuth {
	return &AdminAuth{gate: gate}
}

// Require rejects requests whose X-Admin-Password header does not match the
// configured operator secret.
func (m *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.gate.Authorize(r.Header.Get(auth.PasswordHeader)); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
