package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type lookupCall struct {
	user, scope, key string
}

func idemRouter(opts IdempotencyOptions, lookup IdempotencyLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Identity(), IdempotencyValidator(opts, lookup))
	r.POST("/meetings/:id/summary", func(c *gin.Context) {
		key, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{"key": key, "replay": IsReplay(c), "bypass": IsRateBypass(c)})
	})
	return r
}

func meetingScope(c *gin.Context) string {
	if c.FullPath() == "/meetings/:id/summary" {
		return "meeting-summary:" + c.Param("id")
	}
	return ""
}

func TestIdempotencyValidator_NoHeaderIsNoop(t *testing.T) {
	called := false
	r := idemRouter(IdempotencyOptions{Scope: meetingScope}, func(context.Context, string, string, string, time.Time) (bool, error) {
		called = true
		return true, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/meetings/m1/summary", nil))
	if w.Code != http.StatusOK || called {
		t.Fatalf("expected passthrough without lookup, code=%d called=%v", w.Code, called)
	}
	if !strings.Contains(w.Body.String(), `"replay":false`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestIdempotencyValidator_InvalidKeys(t *testing.T) {
	r := idemRouter(IdempotencyOptions{MaxLen: 8, Pattern: regexp.MustCompile(`^[a-z]+$`)}, nil)

	for _, key := range []string{"toolongkey", "UPPER", "a b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/meetings/m1/summary", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "bad_idempotency_key") {
			t.Fatalf("key %q: code=%d body=%s", key, w.Code, w.Body.String())
		}
	}
}

func TestIdempotencyValidator_ReplayMarksBypass(t *testing.T) {
	var got lookupCall
	r := idemRouter(IdempotencyOptions{Scope: meetingScope}, func(_ context.Context, user, scope, key string, _ time.Time) (bool, error) {
		got = lookupCall{user, scope, key}
		return true, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/meetings/m1/summary", nil)
	req.Header.Set(HeaderIdempotencyKey, "key-1")
	req.Header.Set(HeaderUserID, "alice")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got != (lookupCall{"alice", "meeting-summary:m1", "key-1"}) {
		t.Fatalf("lookup args = %+v", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"replay":true`) || !strings.Contains(body, `"bypass":true`) || !strings.Contains(body, `"key":"key-1"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestIdempotencyValidator_LookupErrorOrMissIsNotReplay(t *testing.T) {
	for name, lookup := range map[string]IdempotencyLookup{
		"miss":  func(context.Context, string, string, string, time.Time) (bool, error) { return false, nil },
		"error": func(context.Context, string, string, string, time.Time) (bool, error) { return false, errors.New("db down") },
	} {
		t.Run(name, func(t *testing.T) {
			r := idemRouter(IdempotencyOptions{Scope: meetingScope}, lookup)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/meetings/m1/summary", nil)
			req.Header.Set(HeaderIdempotencyKey, "key-1")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"replay":false`) {
				t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestIdempotencyValidator_UnscopedRouteSkipsLookup(t *testing.T) {
	called := false
	r := idemRouter(IdempotencyOptions{Scope: func(*gin.Context) string { return "" }}, func(context.Context, string, string, string, time.Time) (bool, error) {
		called = true
		return true, nil
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/meetings/m1/summary", nil)
	req.Header.Set(HeaderIdempotencyKey, "key-1")
	r.ServeHTTP(w, req)
	if called || !strings.Contains(w.Body.String(), `"key":"key-1"`) {
		t.Fatalf("called=%v body=%s", called, w.Body.String())
	}
}
