package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, logger: logger}
}

// --- DTOs for API (Data Transfer Objects) ---

// AddExerciseRequest accepts form fields or a JSON body. Duration may be a
// JSON number or a numeric string; Date is optional.
type AddExerciseRequest struct {
	Description scalarString `form:"description" json:"description"`
	Duration    scalarString `form:"duration" json:"duration"`
	Date        scalarString `form:"date" json:"date"`
}

// ExerciseResponse flattens the owner and the stored exercise.
type ExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// MapReceiptToResponse converts an ExerciseReceipt to its response DTO.
func MapReceiptToResponse(receipt *service.ExerciseReceipt) ExerciseResponse {
	if receipt == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          receipt.User.ID.Hex(),
		Username:    receipt.User.Username,
		Description: receipt.Exercise.Description,
		Duration:    receipt.Exercise.Duration,
		Date:        domain.DayString(receipt.Exercise.Date),
	}
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Record an exercise for a user
// @Tags Exercises
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Param description formData string false "Description"
// @Param duration formData number false "Duration in minutes"
// @Param date formData string false "Date, defaults to now"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid date format / Invalid duration / Invalid request body"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Error saving exercise"
// @Router /users/{id}/exercises [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Info("rejected request body", "error", err, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	receipt, err := h.exerciseService.AddExercise(c.Request.Context(), service.AddExerciseInput{
		UserID:      c.Param("id"),
		Description: string(req.Description),
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Error saving exercise")
		return
	}

	c.JSON(http.StatusOK, MapReceiptToResponse(receipt))
}
