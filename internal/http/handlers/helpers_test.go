package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/http/middleware"
	"github.com/Vinayak2k03/NotedAI/internal/repo"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/summary"
)

// ---------- test DB + wiring ----------

// Wednesday 2025-03-12 10:00 UTC.
func fixedNow() time.Time { return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) }

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// stubSummaries lets tests control the summary pipeline, including hangs.
type stubSummaries struct {
	mu    sync.Mutex
	calls int
	last  summary.Request

	generate  func(ctx context.Context, req summary.Request) (summary.Result, bool, error)
	summarize func(ctx context.Context, id string) (*domain.Meeting, summary.Result, bool, error)
}

func (s *stubSummaries) Generate(ctx context.Context, _, _ string, req summary.Request) (summary.Result, bool, error) {
	s.mu.Lock()
	s.calls++
	s.last = req
	s.mu.Unlock()
	if s.generate != nil {
		return s.generate(ctx, req)
	}
	return summary.Result{
		Summary:     "## Summary\n- ok",
		Method:      summary.MethodFallback,
		GeneratedAt: fixedNow(),
	}, false, nil
}

func (s *stubSummaries) SummarizeMeeting(ctx context.Context, _, id, _ string) (*domain.Meeting, summary.Result, bool, error) {
	if s.summarize != nil {
		return s.summarize(ctx, id)
	}
	return nil, summary.Result{}, false, services.ErrMeetingNotFound
}

type testEnv struct {
	db        *gorm.DB
	events    *services.EventService
	tasks     *services.TaskService
	meetings  *services.MeetingService
	summaries *stubSummaries
	actions   *assistant.Registry
	h         *Handlers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newHandlerDB(t)

	ev := services.NewEventService(db)
	ev.Now = fixedNow
	ts := services.NewTaskService(db)
	ts.Now = fixedNow
	ms := services.NewMeetingService(db)
	ms.Now = fixedNow

	sum := &stubSummaries{}
	reg := assistant.NewRegistry()
	if err := assistant.RegisterDefaults(reg, assistant.Deps{Events: ev, Tasks: ts, Summaries: sum, Now: fixedNow}); err != nil {
		t.Fatalf("register actions: %v", err)
	}

	h := New(Deps{
		Summaries: sum,
		Events:    ev,
		Tasks:     ts,
		Meetings:  ms,
		Actions:   reg,
		Stats: func(ctx context.Context, userID, key string) (int, *time.Time, error) {
			return repo.CollectionStats(ctx, db, userID, key)
		},
		SummaryTimeout: 2 * time.Second,
		Location:       time.UTC,
		Now:            fixedNow,
	})
	return &testEnv{db: db, events: ev, tasks: ts, meetings: ms, summaries: sum, actions: reg, h: h}
}

// router wires the handlers behind the identity and idempotency middleware,
// mirroring the production route table.
func (e *testEnv) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	h := e.h
	r.POST("/generate-summary", h.GenerateSummary)

	r.GET("/events", h.ListEvents)
	r.POST("/events", h.CreateEvent)
	r.PUT("/events/:id", h.UpdateEvent)
	r.POST("/events/:id/move", h.MoveEvent)
	r.DELETE("/events/:id", h.DeleteEvent)
	r.GET("/calendar/entries", h.CalendarEntries)
	r.GET("/calendar.ics", h.CalendarICS)

	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks", h.CreateTask)
	r.POST("/tasks/:ref/toggle", h.ToggleTask)
	r.DELETE("/tasks/:ref", h.DeleteTask)

	r.GET("/meetings", h.ListMeetings)
	r.POST("/meetings", h.CreateMeeting)
	r.GET("/meetings/:id", h.GetMeeting)
	r.PUT("/meetings/:id/notes", h.UpdateMeetingNotes)
	r.DELETE("/meetings/:id", h.DeleteMeeting)
	r.POST("/meetings/:id/summary", h.SummarizeMeeting)

	r.GET("/assistant/actions", h.ListActions)
	r.POST("/assistant/actions/:name", h.InvokeAction)
	return r
}

// do performs a request with an optional JSON body and headers (k, v pairs).
func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; body=%s", v, err, w.Body.String())
	}
	return v
}
