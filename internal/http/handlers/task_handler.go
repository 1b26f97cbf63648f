// Task HTTP handlers.
//
// This file exposes REST endpoints for tasks:
//   - GET    /tasks                 (filtered list with a one-line summary)
//   - POST   /tasks                 (create)
//   - POST   /tasks/{ref}/toggle    (flip completion)
//   - DELETE /tasks/{ref}           (delete)
//
// {ref} is a task id or, failing that, a case-insensitive title, which is
// how the assistant refers to tasks.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/services"
)

// CreateTaskRequest is the JSON payload for creating a task. Tags may be
// given as a list or a comma-separated string in TagList.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255" example:"Draft hiring plan"`
	Description string   `json:"description,omitempty" binding:"max=4000"`
	Priority    string   `json:"priority,omitempty" enums:"low,medium,high" example:"high"`
	DueDate     string   `json:"dueDate,omitempty" example:"2025-03-14"`
	Tags        []string `json:"tags,omitempty" example:"work,q3"`
	TagList     string   `json:"tagList,omitempty" example:"work, q3"`
}

// ListTasks godoc
// @ID          listTasks
// @Summary     List tasks
// @Description Filters combine; the summary line describes the filters applied.
// @Tags        Tasks
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       status     query   string  false "all, active or completed"  example(active)
// @Param       priority   query   string  false "low, medium or high"  example(high)
// @Param       period     query   string  false "today, tomorrow, this week or overdue"  example(today)
// @Param       tag        query   string  false "Tag"  example(work)
//
// @Success     200  {object}  services.TaskList
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid filter"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tasks [get]
func (h *Handlers) ListTasks(c *gin.Context) {
	list, err := h.tasks.List(c.Request.Context(), userID(c), services.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Period:   c.Query("period"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, list)
}

// CreateTask godoc
// @ID          createTask
// @Summary     Create a task
// @Description Priority defaults to medium and the due date to today.
// @Tags        Tasks
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                      false "User ID"  example(user123)
// @Param       body       body    handlers.CreateTaskRequest  true  "Task"
//
// @Success     201  {object}  domain.Task
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tasks [post]
func (h *Handlers) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required")
		return
	}
	tags := req.Tags
	if len(tags) == 0 && req.TagList != "" {
		tags = services.SplitTags(req.TagList)
	}

	t, err := h.tasks.Add(c.Request.Context(), userID(c), services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        tags,
	})
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusCreated, t)
}

// ToggleTask godoc
// @ID          toggleTask
// @Summary     Toggle task completion
// @Tags        Tasks
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       ref        path    string  true  "Task ID or title"
//
// @Success     200  {object}  domain.Task
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Router      /tasks/{ref}/toggle [post]
func (h *Handlers) ToggleTask(c *gin.Context) {
	t, err := h.tasks.Toggle(c.Request.Context(), userID(c), c.Param("ref"))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTask godoc
// @ID          deleteTask
// @Summary     Delete a task
// @Tags        Tasks
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID"  example(user123)
// @Param       ref        path    string  true  "Task ID or title"
//
// @Success     200  {object}  domain.Task  "The deleted task"
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Router      /tasks/{ref} [delete]
func (h *Handlers) DeleteTask(c *gin.Context) {
	t, err := h.tasks.Delete(c.Request.Context(), userID(c), c.Param("ref"))
	if err != nil {
		failErr(c, err, ErrCodeStoreFailed)
		return
	}
	ok(c, http.StatusOK, t)
}
