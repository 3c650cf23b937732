package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LogHandler serves activity logs.
type LogHandler struct {
	logService service.LogService
	logger     *slog.Logger
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService, logger *slog.Logger) *LogHandler {
	return &LogHandler{logService: logService, logger: logger}
}

// LogQueryParams are all optional. Limit stays a string so that
// non-numeric values fall back to the default instead of failing binding.
type LogQueryParams struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

type LogResponse struct {
	ID       string            `json:"_id"`
	Username string            `json:"username"`
	Count    int               `json:"count"`
	Log      []domain.LogEntry `json:"log"`
}

// MapLogToResponse converts a domain ExerciseLog to its response DTO.
func MapLogToResponse(log *domain.ExerciseLog) LogResponse {
	if log == nil {
		return LogResponse{Log: []domain.LogEntry{}}
	}
	entries := log.Log
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return LogResponse{
		ID:       log.User.ID.Hex(),
		Username: log.User.Username,
		Count:    log.Count,
		Log:      entries,
	}
}

// GetLogs godoc
// @Summary Get a user's exercise log
// @Description Filters by an inclusive date range and caps the result (default 500).
// @Tags Logs
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Param from query string false "Earliest date, inclusive"
// @Param to query string false "Latest date, inclusive"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} LogResponse
// @Failure 400 {object} gin.H "Invalid date format"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Error fetching user logs"
// @Router /users/{id}/logs [get]
func (h *LogHandler) GetLogs(c *gin.Context) {
	var params LogQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Info("rejected query", "error", err, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	log, err := h.logService.GetLogs(c.Request.Context(), service.LogQuery{
		UserID: c.Param("id"),
		From:   params.From,
		To:     params.To,
		Limit:  params.Limit,
	})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Error fetching user logs")
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(log))
}
