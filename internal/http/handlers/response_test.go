package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

func TestFail_500LogsWithRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		failErr(c, errors.New("disk on fire"), ErrCodeStoreFailed)
	})

	w := do(t, r, http.MethodGet, "/boom", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeStoreFailed || resp.Message != "disk on fire" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), ErrCodeStoreFailed) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func TestFail_4xxIsQuiet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope")
	})

	w := do(t, r, http.MethodGet, "/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx must not log: %s", buf.String())
	}
}

func TestSuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"n": 1}) })
	r.DELETE("/gone", func(c *gin.Context) { noContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"n":1}` {
		t.Fatalf("ok: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gone", nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent: %d %q", w.Code, w.Body.String())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrEmptyTitle, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrInvalidDate, http.StatusBadRequest, ErrCodeInvalidDate},
		{services.ErrInvalidPriority, http.StatusBadRequest, ErrCodeInvalidPriority},
		{services.ErrTaskNotFound, http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("wrap: %w", services.ErrMeetingNotFound), http.StatusNotFound, ErrCodeNotFound},
		{summary.ErrNotesTooLong, http.StatusBadRequest, ErrCodeNotesTooLong},
		{fmt.Errorf("%w: fly", assistant.ErrUnknownAction), http.StatusNotFound, ErrCodeUnknownAction},
		{fmt.Errorf("%w: title", assistant.ErrMissingParam), http.StatusBadRequest, ErrCodeMissingParam},
		{errors.New("other"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		status, code := classify(tc.err, ErrCodeInternal)
		if status != tc.status || code != tc.code {
			t.Errorf("classify(%v) = (%d, %s); want (%d, %s)", tc.err, status, code, tc.status, tc.code)
		}
	}
}
