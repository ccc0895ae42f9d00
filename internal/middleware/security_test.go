package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/profiledesk/backend/internal/testutil"
)

func TestSecurityHeaders_Apply(t *testing.T) {
	s := NewSecurityHeaders(false)
	next, _ := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	s.Apply(next).ServeHTTP(rr, req)

	testutil.AssertEqual(t, "nosniff", rr.Header().Get("X-Content-Type-Options"), "nosniff header")
	testutil.AssertEqual(t, "DENY", rr.Header().Get("X-Frame-Options"), "frame options header")
	testutil.AssertEqual(t, "", rr.Header().Get("Strict-Transport-Security"), "no HSTS over plain HTTP")
}

func TestSecurityHeaders_HSTSWhenSecure(t *testing.T) {
	s := NewSecurityHeaders(true)
	next, _ := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	s.Apply(next).ServeHTTP(rr, req)

	testutil.AssertContains(t, rr.Header().Get("Strict-Transport-Security"), "max-age=", "HSTS header")
}
