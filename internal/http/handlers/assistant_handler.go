// Assistant HTTP handlers.
//
// This file exposes the action bridge used by the conversational assistant:
//   - GET  /assistant/actions          (describe registered actions)
//   - POST /assistant/actions/{name}   (invoke one action with JSON args)
//
// Deciding which action a message maps to is the assistant's job; these
// endpoints only describe and dispatch.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/assistant"
)

// ListActionsResponse describes the available actions.
type ListActionsResponse struct {
	Actions []assistant.Action `json:"actions"`
}

// InvokeActionRequest carries the arguments of one invocation.
type InvokeActionRequest struct {
	Args assistant.Args `json:"args" swaggertype:"object"`
}

// InvokeActionResponse wraps an action's result.
type InvokeActionResponse struct {
	Action string `json:"action" example:"addTask"`
	Result any    `json:"result"`
}

// ListActions godoc
// @ID          listActions
// @Summary     Describe assistant actions
// @Tags        Assistant
// @Produce     json
// @Success     200  {object}  handlers.ListActionsResponse
// @Router      /assistant/actions [get]
func (h *Handlers) ListActions(c *gin.Context) {
	ok(c, http.StatusOK, ListActionsResponse{Actions: h.actions.Describe()})
}

// InvokeAction godoc
// @ID          invokeAction
// @Summary     Invoke an assistant action
// @Description Required parameters are checked before the action runs. An empty body means no args.
// @Tags        Assistant
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                        false "User ID"  example(user123)
// @Param       name       path    string                        true  "Action name"  example(addTask)
// @Param       body       body    handlers.InvokeActionRequest  false "Arguments"
//
// @Success     200  {object}  handlers.InvokeActionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or invalid argument"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown action or target"
// @Failure     408  {object}  handlers.ErrorResponse  "Request timed out"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /assistant/actions/{name} [post]
func (h *Handlers) InvokeAction(c *gin.Context) {
	var req InvokeActionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "args must be a JSON object")
			return
		}
	}

	name, uid := c.Param("name"), userID(c)
	// Actions may reach the summary pipeline, so they share its deadline.
	res, err := raceDeadline(c.Request.Context(), h.summaryTimeout, func(ctx context.Context) (any, error) {
		return h.actions.Invoke(ctx, uid, name, req.Args)
	})
	if err != nil {
		if errors.Is(err, errDeadline) {
			fail(c, http.StatusRequestTimeout, ErrCodeTimeout, "request timed out")
			return
		}
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, InvokeActionResponse{Action: name, Result: res})
}
