// Common helper functions for HTTP handlers.

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRose/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// writeError writes a structured error response with an explicit status.
func writeError(c *gin.Context, statusCode int, code errors.ErrorCode, message string, details []string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Code:    code.String(),
		Message: message,
		Details: details,
	})
}

// writeAppError maps application-level errors to HTTP status codes.  Data
// errors carry every message in details; server errors are masked.
func writeAppError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if code == errors.CodeUnknown || errors.IsServerError(code) {
		_ = c.Error(err)
		if code == errors.CodeUnknown {
			code = errors.ErrCodeInternal
		}
		writeError(c, status, code, errors.DefaultMessageForCode(code), nil)
		return
	}

	msgs := errors.MessagesOf(err)
	message := errors.DefaultMessageForCode(code)
	if len(msgs) > 0 {
		message = msgs[0]
	}
	writeError(c, status, code, message, msgs)
}

//Personal.AI order the ending
