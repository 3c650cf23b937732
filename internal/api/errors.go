package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response bodies for the error taxonomy.
const (
	msgUserNotFound    = "User not found"
	msgInvalidDate     = "Invalid date format"
	msgInvalidDuration = "Invalid duration"
	msgInvalidBody     = "Invalid request body"
)

// respondWithServiceError maps a service error to its status and body.
// fallback is the message sent for storage and unexpected failures.
func respondWithServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		logger.Info("user not found", "path", c.Request.URL.Path, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrInvalidDate):
		logger.Info("rejected date", "error", err, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusBadRequest, msgInvalidDate)
	case errors.Is(err, service.ErrInvalidDuration):
		logger.Info("rejected duration", "error", err, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusBadRequest, msgInvalidDuration)
	default:
		logFailure(c, logger, fallback, err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
