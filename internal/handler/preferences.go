package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/baravibes/baravibes/internal/domain"
	"github.com/baravibes/baravibes/internal/service"
)

// PreferencesHandler handles per-user display preference endpoints.
type PreferencesHandler struct {
	prefs *service.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(prefs *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

type savePreferencesRequest struct {
	Theme           *domain.Theme    `json:"theme" validate:"omitempty,oneof=light dark"`
	AccentColor     *string          `json:"accentColor" validate:"omitempty,max=32"`
	FontSize        *domain.FontSize `json:"fontSize" validate:"omitempty,oneof=small medium large"`
	ShowCursorTrail *int             `json:"showCursorTrail" validate:"omitempty,min=0,max=1"`
}

// toUpdate drops empty-string fields so they read as absent, matching the
// merge semantics of an omitted field.
func (r savePreferencesRequest) toUpdate() domain.PreferencesUpdate {
	u := domain.PreferencesUpdate{
		ShowCursorTrail: r.ShowCursorTrail,
	}
	if r.Theme != nil && *r.Theme != "" {
		u.Theme = r.Theme
	}
	if r.AccentColor != nil && *r.AccentColor != "" {
		u.AccentColor = r.AccentColor
	}
	if r.FontSize != nil && *r.FontSize != "" {
		u.FontSize = r.FontSize
	}
	return u
}

// Get returns the caller's preference tuple, falling back to the defaults
// when nothing is stored yet.
func (h *PreferencesHandler) Get(c echo.Context) error {
	user := CurrentUser(c)

	prefs, err := h.prefs.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, prefs)
}

// Save merges a partial preference update over the caller's stored tuple.
func (h *PreferencesHandler) Save(c echo.Context) error {
	user := CurrentUser(c)

	var req savePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return JSON(c, http.StatusOK, h.prefs.Save(c.Request().Context(), user.ID, req.toUpdate()))
}
