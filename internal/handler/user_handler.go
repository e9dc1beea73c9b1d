package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exercisetracker/internal/service"
)

// UserHandler serves the user directory.
type UserHandler struct {
	svc     service.UserService
	respond Responder
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, respond Responder) *UserHandler {
	return &UserHandler{svc: svc, respond: respond}
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req.Username)
	if err != nil {
		return h.respond.Error(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return h.respond.Error(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
