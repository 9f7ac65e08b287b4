package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/baravibes/baravibes/internal/domain"
	"github.com/baravibes/baravibes/internal/service"
)

// NewsletterHandler handles newsletter endpoints.
type NewsletterHandler struct {
	newsletter *service.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(newsletter *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe records a newsletter signup.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return JSON(c, http.StatusOK, h.newsletter.Subscribe(c.Request().Context(), req.Email))
}
