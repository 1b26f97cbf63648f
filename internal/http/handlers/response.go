// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities used across endpoints:
//   - ErrorResponse, the standard error envelope with a stable `code`
//   - SummaryErrorResponse, the flat shape used by POST /generate-summary
//   - fail() and failErr(), which centralize error logging and formatting
//   - ok() and noContent() for success responses
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "meeting not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vinayak2k03/NotedAI/internal/http/middleware"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"meeting not found"`
}

// SummaryErrorResponse is the error body of POST /generate-summary. Method is
// "timeout" when the request deadline won and "error" for unexpected failures.
type SummaryErrorResponse struct {
	Error   string `json:"error" example:"Request timed out"`
	Details string `json:"details,omitempty" example:"context deadline exceeded"`
	Method  string `json:"method,omitempty" example:"timeout"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr translates a service error via classify and fails the request.
func failErr(c *gin.Context, err error, fallbackCode string) {
	status, code := classify(err, fallbackCode)
	fail(c, status, code, err.Error())
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
