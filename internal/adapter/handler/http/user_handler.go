package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/domain/model"
)

type UserHandler struct {
	service UserService
	logger  *zap.Logger
}

func NewUserHandler(service UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var in model.UserInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetRole returns the whole user record; the frontend reads role and status from it
func (h *UserHandler) GetRole(c echo.Context) error {
	user, err := h.service.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var patch model.UserProfilePatch
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	result, err := h.service.UpdateProfile(c.Request().Context(), c.Param("email"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var req UpdateUserStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
