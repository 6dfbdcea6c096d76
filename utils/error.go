package utils

import (
	"errors"
	"net/http"

	"hrbridge/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError translates a service error into the stable error-kind envelope.
// Unknown errors become a 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	var (
		validation    models.ValidationError
		conflict      models.ConflictError
		authorization models.AuthorizationError
		precondition  models.PreconditionError
		notFound      models.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Kind: "validation_error", Message: validation.Reason})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{Kind: "conflict_error", Message: conflict.Reason})
	case errors.As(err, &authorization):
		c.JSON(http.StatusForbidden, ErrorResponse{Kind: "authorization_error", Message: authorization.Reason})
	case errors.As(err, &precondition):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Kind: "precondition_error", Message: precondition.Reason})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Kind: "not_found", Message: notFound.Error()})
	default:
		GetLogger().Error("unexpected service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}
