// Meeting HTTP handlers.
//
// This file exposes REST endpoints for meetings:
//   - GET    /meetings             (list, paginated, newest first, ETag support)
//   - POST   /meetings             (create; the name is derived from notes when empty)
//   - GET    /meetings/{id}        (fetch)
//   - PUT    /meetings/{id}/notes  (replace notes)
//   - DELETE /meetings/{id}        (delete)
//
// POST /meetings/{id}/summary lives in summary_handler.go.
package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/domain"
	"github.com/Vinayak2k03/NotedAI/internal/services"
	"github.com/Vinayak2k03/NotedAI/internal/utils"
)

//
// DTOs
//

// CreateMeetingRequest is the JSON payload for creating a meeting.
type CreateMeetingRequest struct {
	Name  string `json:"name,omitempty" binding:"max=255" example:"Budget review"`
	Date  string `json:"date,omitempty" example:"2025-03-12"`
	Time  string `json:"time,omitempty" example:"09:30"`
	Notes string `json:"notes,omitempty" example:"Discussed Q3 budget."`
}

// UpdateNotesRequest is the JSON payload for replacing meeting notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes" example:"Discussed Q3 budget. Alice owns the hiring plan."`
}

// ListMeetingsResponse wraps a page of meetings and pagination information.
type ListMeetingsResponse struct {
	Meetings   []domain.Meeting `json:"meetings"`
	Pagination utils.Page       `json:"pagination"`
}

const (
	defaultMeetingPageSize = 20
	maxMeetingPageSize     = 100
)

//
// Handlers
//

// ListMeetings godoc
// @ID          listMeetings
// @Summary     List meetings
// @Description Returns a page of meetings, newest first.
// @Tags        Meetings
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       page       query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListMeetingsResponse
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /meetings [get]
func (h *Handlers) ListMeetings(c *gin.Context) {
	page, pageSize := utils.PageParams(c.Query("page"), c.Query("page_size"), defaultMeetingPageSize, maxMeetingPageSize)
	if h.checkETag(c, domain.KeyMeetings, fmt.Sprintf("p%d.%d", page, pageSize)) {
		return
	}

	meetings, err := h.meetings.List(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date > meetings[j].Date
		}
		return meetings[i].Time > meetings[j].Time
	})

	items, p := utils.Paginate(meetings, page, pageSize)
	if items == nil {
		items = []domain.Meeting{}
	}
	ok(c, http.StatusOK, ListMeetingsResponse{Meetings: items, Pagination: p})
}

// CreateMeeting godoc
// @ID          createMeeting
// @Summary     Create a meeting
// @Description Date defaults to today. Without a name, one is derived from the first line of notes.
// @Tags        Meetings
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                         false "User ID"  example(user123)
// @Param       body       body    handlers.CreateMeetingRequest  true  "Meeting"
//
// @Success     201  {object}  domain.Meeting
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /meetings [post]
func (h *Handlers) CreateMeeting(c *gin.Context) {
	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid meeting payload")
		return
	}
	m, err := h.meetings.Create(c.Request.Context(), userID(c), services.MeetingInput{
		Name:  req.Name,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	})
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusCreated, m)
}

// GetMeeting godoc
// @ID          getMeeting
// @Summary     Get a meeting
// @Tags        Meetings
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       id         path    string  true  "Meeting ID"
//
// @Success     200  {object}  domain.Meeting
// @Failure     404  {object}  handlers.ErrorResponse  "Meeting not found"
// @Router      /meetings/{id} [get]
func (h *Handlers) GetMeeting(c *gin.Context) {
	m, err := h.meetings.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMeetingNotes godoc
// @ID          updateMeetingNotes
// @Summary     Replace meeting notes
// @Tags        Meetings
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                       false "User ID"  example(user123)
// @Param       id         path    string                       true  "Meeting ID"
// @Param       body       body    handlers.UpdateNotesRequest  true  "Notes"
//
// @Success     200  {object}  domain.Meeting
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Meeting not found"
// @Router      /meetings/{id}/notes [put]
func (h *Handlers) UpdateMeetingNotes(c *gin.Context) {
	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid notes payload")
		return
	}
	m, err := h.meetings.UpdateNotes(c.Request.Context(), userID(c), c.Param("id"), req.Notes)
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMeeting godoc
// @ID          deleteMeeting
// @Summary     Delete a meeting
// @Tags        Meetings
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       id         path    string  true  "Meeting ID"
//
// @Success     204  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Meeting not found"
// @Router      /meetings/{id} [delete]
func (h *Handlers) DeleteMeeting(c *gin.Context) {
	if err := h.meetings.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	noContent(c)
}
