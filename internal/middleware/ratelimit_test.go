package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profiledesk/backend/internal/auth"
)

// countingHook fakes the Redis side of the limiter: INCR commands get
// monotonically increasing values without any network round trip.
type countingHook struct {
	count int64
}

func (h *countingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *countingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

func (h *countingHook) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			switch c := cmd.(type) {
			case *redis.IntCmd:
				h.count++
				c.SetVal(h.count)
			case *redis.BoolCmd:
				c.SetVal(true)
			}
		}
		return nil
	}
}

func newCountedRedis(h *countingHook) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	client.AddHook(h)
	return client
}

func TestRateLimiter_NilRedisFailsOpen(t *testing.T) {
	rl := NewRateLimiter(nil, 5, time.Minute, "test", nil)
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	rr := httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !*called {
		t.Fatal("expected wrapped handler to run when redis is absent")
	}
}

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	client := newCountedRedis(&countingHook{})
	rl := NewRateLimiter(client, 2, time.Minute, "test", nil)
	next, _ := okHandler()
	handler := rl.Limit(next)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once over the limit, got %d", rr.Code)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("expected no remaining budget, got %q", got)
	}
}

func TestRateLimiter_AdminCredentialBypasses(t *testing.T) {
	hook := &countingHook{}
	client := newCountedRedis(hook)
	gate := auth.NewGate("secret")
	rl := NewRateLimiter(client, 1, time.Minute, "test", AdminBypass(gate))
	next, _ := okHandler()
	handler := rl.Limit(next)

	// Operator sends sail past a limit of 1 and consume no budget.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req.Header.Set(auth.PasswordHeader, "secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("operator send %d: expected 200, got %d", i+1, rr.Code)
		}
	}
	if hook.count != 0 {
		t.Fatalf("operator sends must not touch the budget, counted %d", hook.count)
	}

	// An invalid credential is still throttled like any visitor.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req.Header.Set(auth.PasswordHeader, "wrong")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("visitor send %d: expected %d, got %d", i+1, want, rr.Code)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.9:51234",
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7"},
			want:       "198.51.100.7",
		},
		{
			name:       "x-forwarded-for chain uses first hop",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.2, 10.0.0.3"},
			want:       "198.51.100.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "192.0.2.44"},
			want:       "192.0.2.44",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
