package middleware

import (
	"net/http"

	"github.com/profiledesk/backend/internal/auth"
)

// CORS allows the public profile frontend to call the API from any origin.
// The admin credential travels in a custom header, so it must be listed in
// the preflight allow-list.
type CORS struct{}

func NewCORS() *CORS {
	return &CORS{}
}

func (c *CORS) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+auth.PasswordHeader)
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
