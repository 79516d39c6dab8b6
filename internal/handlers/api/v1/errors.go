package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/handlers/middleware"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError maps err to its HTTP status. Internal failures are logged
// and answered with a generic message.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	resp := ErrorResponse{
		Error:     errors.RootMessage(err),
		Code:      code.Slug(),
		RequestID: middleware.GetRequestID(c),
	}

	if fields, ok := errors.GetMeta(err)["validation_errors"]; ok {
		resp.Details = fields
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed",
			"request_id", resp.RequestID,
			"path", c.Request.URL.Path,
			"code", code,
			"error", err)
		resp.Error = "internal server error"
		resp.Details = nil
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, errors.InvalidArgument(message))
}
