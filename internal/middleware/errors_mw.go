package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"itemhub/internal/apierr"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// errorBody is the single JSON envelope every failure is normalized into
type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []apierr.FieldError `json:"details,omitempty"`
}

// ErrorHandler is the terminal stage of the middleware chain: handlers and
// earlier middleware forward failures via c.Error and never write error bodies
// themselves. This is the only place the error response shape is decided.
// Raw messages from unexpected errors are suppressed in production.
func ErrorHandler(logger *slog.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		resolved := normalize(err, production)
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", resolved.Status,
			"code", resolved.Code,
			"error", err.Error(),
		)

		if c.Writer.Written() {
			return
		}
		c.JSON(resolved.Status, gin.H{
			"success": false,
			"error": errorBody{
				Message: resolved.Message,
				Code:    resolved.Code,
				Details: resolved.Details,
			},
		})
	}
}

func normalize(err error, production bool) *apierr.Error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	// Duplicate key from the store surfaces as a validation failure so clients
	// see the same shape as the pre-insert uniqueness check
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && writeErr.HasErrorCode(11000) {
		return apierr.ValidationFailed(apierr.FieldError{
			Field:   "username",
			Message: "username is already taken",
		})
	}

	if production {
		return apierr.Internal("Internal server error")
	}
	return apierr.Internal(err.Error())
}

// NoRoute answers unmatched paths with the shared error envelope
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": errorBody{
				Message: "Route not found",
				Code:    "NOT_FOUND",
			},
		})
	}
}
