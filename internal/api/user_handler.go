package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// --- Request/Response Structs ---

// CreateUserRequest accepts a form field or JSON body.
type CreateUserRequest struct {
	Username scalarString `form:"username" json:"username"`
}

type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
	}
}

// --- Handler Methods ---

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} gin.H "Error fetching users"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Error fetching users")
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary Register a user
// @Description Any username is accepted, including an empty one.
// @Tags Users
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string false "Username"
// @Success 200 {object} UserResponse
// @Failure 500 {object} gin.H "Error saving user"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Info("rejected request body", "error", err, "request_id", c.GetString(ContextRequestIDKey))
		abortWithError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), string(req.Username))
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Error saving user")
		return
	}

	h.logger.Debug("user created", "user_id", user.ID.Hex())
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
