package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")
	c.Request = req

	key := KeyByUserOrIP()(c)
	if !strings.HasPrefix(key, "ip:") || !strings.Contains(key, "203.0.113.9") {
		t.Fatalf("expected ip-based key; got %q", key)
	}

	// The demo identity alone does not key by user.
	c.Set(userIDKey, DemoUser)
	if key := KeyByUserOrIP()(c); !strings.HasPrefix(key, "ip:") {
		t.Fatalf("demo user should key by ip; got %q", key)
	}

	c.Set(userIDKey, "u123")
	c.Set(userExplicitKey, true)
	if key := KeyByUserOrIP()(c); key != "user:u123" {
		t.Fatalf("expected user-based key; got %q", key)
	}
}

func TestNewRateLimiter_BurstCoercionAndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByUserOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed, got %d", rl.burst)
	}
	lim := rl.getVisitor("k1")
	if got := rl.getVisitor("k1"); got != lim {
		t.Fatalf("expected same limiter instance to be reused")
	}
}

func TestRateLimiter_IdleBucketsEvicted(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByUserOrIP())
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	old := rl.getVisitor("old")
	_ = rl.getVisitor("fresh")

	now = now.Add(rl.ttl / 2)
	_ = rl.getVisitor("fresh")

	now = now.Add(rl.ttl/2 + time.Second)
	if got := rl.getVisitor("old"); got == old {
		t.Fatalf("idle bucket should have been replaced")
	}
	if rl.size() != 2 {
		t.Fatalf("expected old (recreated) and fresh, got %d buckets", rl.size())
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Now()

	lim := rate.NewLimiter(rate.Limit(0.25), 1)
	lim.AllowN(now, 1)
	if got := retryAfter(lim, now); got != 4 {
		t.Fatalf("retryAfter = %d, want 4", got)
	}
	// Checking must not consume the reservation.
	if got := retryAfter(lim, now); got != 4 {
		t.Fatalf("second retryAfter = %d, want 4", got)
	}

	fast := rate.NewLimiter(rate.Limit(100), 1)
	fast.AllowN(now, 1)
	if got := retryAfter(fast, now); got != 1 {
		t.Fatalf("sub-second waits round up to 1, got %d", got)
	}

	never := rate.NewLimiter(0, 1)
	never.AllowN(now, 1)
	if got := retryAfter(never, now); got != 60 {
		t.Fatalf("zero-rate limiter = %d, want 60", got)
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.5, 1, KeyByUserOrIP())

	r := gin.New()
	r.Use(RequestID(), Identity())
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Bypass") == "1" {
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	do := func(user, bypass string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if user != "" {
			req.Header.Set(HeaderUserID, user)
		}
		if bypass != "" {
			req.Header.Set("X-Bypass", bypass)
		}
		r.ServeHTTP(w, req)
		return w
	}

	if w := do("alice", ""); w.Code != http.StatusOK {
		t.Fatalf("first request = %d", w.Code)
	}
	w := do("alice", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", w.Code)
	}
	if ra := w.Header().Get("Retry-After"); ra != "2" {
		t.Fatalf("Retry-After = %q, want 2", ra)
	}
	if !strings.Contains(w.Body.String(), `"code":"too_many_requests"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	if w := do("alice", "1"); w.Code != http.StatusOK {
		t.Fatalf("bypassed request = %d", w.Code)
	}
	if w := do("bob", ""); w.Code != http.StatusOK {
		t.Fatalf("other user has own bucket, got %d", w.Code)
	}
}
