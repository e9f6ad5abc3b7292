package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user and token service dependencies.
type UserHandler struct {
	userService  service.UserService
	tokenService service.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, tokenService service.TokenService) *UserHandler {
	return &UserHandler{userService: userService, tokenService: tokenService}
}

// CreateUserRequest is the body of POST /api/users. Username is optional.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}

// CreateUserResponse is the created user. Token is only set when token
// issuing is enabled, and this is the only place it is ever handed out.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
	Token    string `json:"token,omitempty"`
}

// CreateUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "Username"
// @Success 200 {object} CreateUserResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.CreateUser(ctx, req.Username)
	if err != nil {
		respondServiceError(c, err, "Failed to create user.")
		return
	}

	resp := CreateUserResponse{Username: user.Username, ID: user.ID}
	if h.tokenService.Enabled() {
		resp.Token, err = h.tokenService.IssueToken(ctx, user.ID)
		if err != nil {
			respondServiceError(c, err, "Failed to issue token.")
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary List all users in creation order
// @Tags Users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve users.")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, users)
}
