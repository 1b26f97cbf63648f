// Event and calendar HTTP handlers.
//
// This file exposes REST endpoints for calendar events:
//   - GET    /events               (list, optional ?period=, ETag support)
//   - POST   /events               (create; duplicates return the existing event)
//   - PUT    /events/{id}          (update)
//   - POST   /events/{id}/move     (drag-and-drop to a new date)
//   - DELETE /events/{id}          (delete)
//   - GET    /calendar/entries     (widget feed, ETag support)
//   - GET    /calendar.ics         (iCalendar export, ETag support)
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/calendar"
	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/services"
)

//
// DTOs
//

// EventRequest is the JSON payload for creating or updating an event. Date
// accepts YYYY-MM-DD, RFC 3339 timestamps and long forms like "March 12, 2025".
type EventRequest struct {
	Title       string `json:"title" binding:"required,max=255" example:"Sprint planning"`
	Date        string `json:"date" binding:"required" example:"2025-03-12"`
	Time        string `json:"time,omitempty" example:"14:30"`
	Description string `json:"description,omitempty" binding:"max=4000" example:"Room 4"`
	Color       string `json:"color,omitempty" example:"#3b82f6"`
}

func (r EventRequest) input() services.EventInput {
	return services.EventInput{
		Title:       r.Title,
		Date:        r.Date,
		Time:        r.Time,
		Description: r.Description,
		Color:       r.Color,
	}
}

// MoveEventRequest is the JSON payload of a calendar drop.
type MoveEventRequest struct {
	Date string `json:"date" binding:"required" example:"2025-03-14"`
}

// CreateEventResponse reports whether the event was new.
type CreateEventResponse struct {
	Event   *domain.Event `json:"event"`
	Created bool          `json:"created"`
}

// ListEventsResponse wraps a list of events.
type ListEventsResponse struct {
	Events []domain.Event `json:"events"`
	Period string         `json:"period,omitempty"`
}

//
// Helpers
//

// checkETag sets a weak ETag for the user's collection and answers 304 when
// If-None-Match matches. It reports whether the response is complete. Stats
// failures only disable the conditional response.
func (h *Handlers) checkETag(c *gin.Context, key, variant string) bool {
	if h.stats == nil {
		return false
	}
	size, updated, err := h.stats(c.Request.Context(), userID(c), key)
	if err != nil {
		return false
	}
	var ts int64
	if updated != nil {
		ts = updated.UnixNano()
	}
	etag := fmt.Sprintf(`W/"%s:%s:%d:%d"`, key, variant, size, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

//
// Handlers
//

// ListEvents godoc
// @ID          listEvents
// @Summary     List calendar events
// @Description Returns all events, or those in a period (today, tomorrow, this week, next week,
// @Description this month, next month) sorted by date and time.
// @Tags        Events
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       period     query   string  false "Period filter"  example(this week)
//
// @Success     200  {object}  handlers.ListEventsResponse
// @Success     304  "Not modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid period"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /events [get]
func (h *Handlers) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	period := strings.TrimSpace(c.Query("period"))

	// Period views depend on the current day, so only full lists are cacheable.
	if period == "" {
		if h.checkETag(c, domain.KeyEvents, "list") {
			return
		}
		events, err := h.events.List(ctx, userID(c))
		if err != nil {
			failErr(c, err, ErrCodeStoreFailed)
			return
		}
		ok(c, http.StatusOK, ListEventsResponse{Events: events})
		return
	}

	events, p, err := h.events.ForPeriod(ctx, userID(c), period)
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, ListEventsResponse{Events: events, Period: string(p)})
}

// CreateEvent godoc
// @ID          createEvent
// @Summary     Create a calendar event
// @Description Adds an event. An event with the same title, date and time is not duplicated;
// @Description the existing one is returned with created=false and status 200.
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                 false "User ID"  example(user123)
// @Param       body       body    handlers.EventRequest  true  "Event"
//
// @Success     201  {object}  handlers.CreateEventResponse  "Created"
// @Success     200  {object}  handlers.CreateEventResponse  "Already existed"
// @Failure     400  {object}  handlers.ErrorResponse        "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse        "Internal error"
// @Router      /events [post]
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and date required")
		return
	}

	ev, created, err := h.events.Add(c.Request.Context(), userID(c), req.input())
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, CreateEventResponse{Event: ev, Created: created})
}

// UpdateEvent godoc
// @ID          updateEvent
// @Summary     Update a calendar event
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                 false "User ID"  example(user123)
// @Param       id         path    string                 true  "Event ID"
// @Param       body       body    handlers.EventRequest  true  "Event"
//
// @Success     200  {object}  domain.Event
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Event not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /events/{id} [put]
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and date required")
		return
	}
	ev, err := h.events.Update(c.Request.Context(), userID(c), c.Param("id"), req.input())
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, ev)
}

// MoveEvent godoc
// @ID          moveEvent
// @Summary     Move an event to another date
// @Description Handles calendar drag-and-drop; the time of day is kept.
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                     false "User ID"  example(user123)
// @Param       id         path    string                     true  "Event ID"
// @Param       body       body    handlers.MoveEventRequest  true  "New date"
//
// @Success     200  {object}  domain.Event
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Event not found"
// @Router      /events/{id}/move [post]
func (h *Handlers) MoveEvent(c *gin.Context) {
	var req MoveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date required")
		return
	}
	ev, err := h.events.Move(c.Request.Context(), userID(c), c.Param("id"), req.Date)
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, ev)
}

// DeleteEvent godoc
// @ID          deleteEvent
// @Summary     Delete a calendar event
// @Tags        Events
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       id         path    string  true  "Event ID"
//
// @Success     204  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Event not found"
// @Router      /events/{id} [delete]
func (h *Handlers) DeleteEvent(c *gin.Context) {
	if _, err := h.events.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	noContent(c)
}

// CalendarEntries godoc
// @ID          calendarEntries
// @Summary     Calendar widget feed
// @Description Events in the shape the calendar widget renders, ordered by start.
// @Tags        Calendar
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
//
// @Success     200  {array}   calendar.Entry
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar/entries [get]
func (h *Handlers) CalendarEntries(c *gin.Context) {
	if h.checkETag(c, domain.KeyEvents, "entries") {
		return
	}
	events, err := h.events.List(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, calendar.Entries(events))
}

// CalendarICS godoc
// @ID          calendarICS
// @Summary     Export events as iCalendar
// @Tags        Calendar
// @Produce     text/calendar
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
//
// @Success     200  {string}  string  "VCALENDAR document"
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar.ics [get]
func (h *Handlers) CalendarICS(c *gin.Context) {
	if h.checkETag(c, domain.KeyEvents, "ics") {
		return
	}
	events, err := h.events.List(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="notedai.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.ExportICS(events, h.now(), h.loc)))
}
