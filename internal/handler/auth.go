package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/baravibes/baravibes/internal/domain"
	"github.com/baravibes/baravibes/internal/service"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "baravibes_session"

const sessionMaxAge = 365 * 24 * time.Hour

// AuthHandler handles session endpoints and the OAuth redirect bridge.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Me returns the calling user, or null for anonymous requests.
func (h *AuthHandler) Me(c echo.Context) error {
	return JSON(c, http.StatusOK, CurrentUser(c))
}

// Logout clears the session cookie. Succeeds whether or not the caller was
// signed in.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return JSON(c, http.StatusOK, domain.OpResult{Success: true})
}

// OAuthStart redirects the browser to the identity provider's consent page.
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	appID := c.QueryParam("appId")
	redirectURI := c.QueryParam("redirectUri")
	state := c.QueryParam("state")
	flowType := c.QueryParam("type")
	if flowType == "" {
		flowType = "signin"
	}

	if redirectURI == "" {
		return c.String(http.StatusBadRequest, "Missing redirectUri")
	}
	if state == "" {
		return c.String(http.StatusBadRequest, "Missing state")
	}
	if !h.auth.HasProvider() {
		return c.String(http.StatusInternalServerError, "OAuth provider is not configured")
	}

	url, err := h.auth.AuthCodeURL(appID, redirectURI, state, flowType)
	if err != nil {
		slog.Error("oauth start failed", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to start OAuth flow")
	}

	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// OAuthCallback exchanges the authorization code for a session, sets the
// session cookie and returns the browser to the site root. Provider failures
// are logged and surfaced as a generic failure; no partial session is left
// behind.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code and state are required")
	}

	_, token, err := h.auth.HandleCallback(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "openId missing from user info")
		}
		slog.Error("oauth callback failed", "error", err)
		sentry.CaptureException(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "OAuth callback failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})

	return c.Redirect(http.StatusFound, "/")
}
