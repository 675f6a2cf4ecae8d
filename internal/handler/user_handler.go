package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// UserHandler handles user account endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsersQuery holds user list filters.
type ListUsersQuery struct {
	Name  string `query:"name" validate:"omitempty,max=128"`
	Email string `query:"email" validate:"omitempty,email"`
	Role  string `query:"role" validate:"omitempty,oneof=user admin"`
	PageQuery
}

// UpdateUserRequest represents a partial user update. Only admins may set role.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserList is a page of users.
type UserList struct {
	Data   []model.User `json:"data"`
	Totals Totals       `json:"totals"`
}

// Profile godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param name query string false "Exact name"
// @Param email query string false "Exact email"
// @Param role query string false "Role" Enums(user, admin)
// @Param page query int false "Page" minimum(1)
// @Param perPage query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} UserList
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	var q ListUsersQuery
	if err := bind(c, &q, errors.LocationQuery); err != nil {
		return err
	}

	page := q.page()
	users, total, err := h.svc.ListUsers(c.Request().Context(), repository.UserFilter{
		Name:  q.Name,
		Email: q.Email,
		Role:  model.Role(q.Role),
		Page:  page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserList{Data: users, Totals: totals(total, page)})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{userId} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := bind(c, &req, errors.LocationBody); err != nil {
		return err
	}

	in := service.UpdateUserInput{Name: req.Name, Email: req.Email, Password: req.Password}
	if req.Role != nil {
		role := model.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
