package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/baravibes/baravibes/internal/domain"
	"github.com/baravibes/baravibes/internal/service"
)

// AdminHandler handles the admin dashboard endpoints. Authorization is
// enforced by the RequireAdmin middleware on the route group.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats returns the aggregate dashboard counts.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, stats)
}

// ListUsers returns every user in summary form.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=user admin"`
}

// UpdateUserRole changes a user's role. Self-demotion is refused with a soft
// failure in the response payload.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result := h.admin.UpdateRole(c.Request().Context(), CurrentUser(c), userID, req.Role)
	return JSON(c, http.StatusOK, result)
}

// DeleteUser removes a user and their preferences. Self-deletion is refused
// with a soft failure.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}

	result := h.admin.DeleteUser(c.Request().Context(), CurrentUser(c), userID)
	return JSON(c, http.StatusOK, result)
}

// ListSubscribers returns every subscriber row, including inactive ones.
func (h *AdminHandler) ListSubscribers(c echo.Context) error {
	subs, err := h.admin.ListSubscribers(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, subs)
}

// RemoveSubscriber deactivates a subscriber row without deleting it.
func (h *AdminHandler) RemoveSubscriber(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusOK, h.admin.RemoveSubscriber(c.Request().Context(), id))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", domain.ErrInvalidInput)
	}
	return id, nil
}
