package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/baravibes/baravibes/internal/domain"
)

// UserStore defines the user data access interface consumed by AuthService.
type UserStore interface {
	FindByOpenID(ctx context.Context, openID string) (*domain.User, error)
	Upsert(ctx context.Context, u domain.UserUpsert) (*domain.User, error)
}

// AuthConfig holds identity provider and session configuration.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string

	JWTSecret   string
	OwnerOpenID string

	// SessionTTL defaults to one year when zero.
	SessionTTL time.Duration
}

// AuthService handles the OAuth redirect bridge and session tokens.
type AuthService struct {
	users       UserStore
	jwtSecret   []byte
	ownerOpenID string
	sessionTTL  time.Duration
	provider    *oauth2.Config
	userInfoURL string
}

// NewAuthService creates a new AuthService. The identity provider is optional;
// without one the OAuth legs report a configuration error while the rest of
// the surface keeps working.
func NewAuthService(users UserStore, cfg AuthConfig) *AuthService {
	s := &AuthService{
		users:       users,
		jwtSecret:   []byte(cfg.JWTSecret),
		ownerOpenID: cfg.OwnerOpenID,
		sessionTTL:  cfg.SessionTTL,
		userInfoURL: cfg.UserInfoURL,
	}
	if s.sessionTTL == 0 {
		s.sessionTTL = 365 * 24 * time.Hour
	}
	if cfg.ClientID != "" && cfg.AuthURL != "" && cfg.TokenURL != "" {
		s.provider = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		}
	}
	return s
}

// HasProvider reports whether an identity provider is configured.
func (s *AuthService) HasProvider() bool {
	return s.provider != nil
}

// AuthCodeURL builds the provider authorization URL for the start leg. The
// state blob is opaque and passed through untouched.
func (s *AuthService) AuthCodeURL(appID, redirectURI, state, flowType string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("oauth provider not configured")
	}
	return s.provider.AuthCodeURL(state,
		oauth2.SetAuthURLParam("redirect_uri", redirectURI),
		oauth2.SetAuthURLParam("app_id", appID),
		oauth2.SetAuthURLParam("type", flowType),
	), nil
}

// HandleCallback exchanges the authorization code, fetches the provider user
// info, upserts the local user and mints a session token. The upsert is the
// only store side effect and is idempotent, so a failed callback can be
// retried safely. An unavailable store is tolerated: the visitor is still
// signed in and the record is written on a later sign-in.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*domain.User, string, error) {
	if s.provider == nil {
		return nil, "", fmt.Errorf("oauth provider not configured")
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("token exchange: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, "", fmt.Errorf("fetch user info: %w", err)
	}
	if info.OpenID == "" {
		return nil, "", fmt.Errorf("%w: openId missing from user info", domain.ErrInvalidInput)
	}

	login := info.LoginMethod
	if login == "" {
		login = info.Platform
	}

	upsert := domain.UserUpsert{
		OpenID:       info.OpenID,
		Name:         strPtr(info.Name),
		Email:        strPtr(info.Email),
		LoginMethod:  strPtr(login),
		LastSignedIn: time.Now(),
	}
	if s.ownerOpenID != "" && info.OpenID == s.ownerOpenID {
		role := domain.RoleAdmin
		upsert.Role = &role
	}

	user, err := s.users.Upsert(ctx, upsert)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, "", fmt.Errorf("upsert user: %w", err)
		}
		slog.Warn("store unavailable, signing in without a user record", "open_id", info.OpenID)
		user = nil
	}

	session, err := s.CreateSessionToken(info.OpenID, info.Name)
	if err != nil {
		return nil, "", err
	}

	return user, session, nil
}

// CreateSessionToken mints the signed cookie value for an external identity.
func (s *AuthService) CreateSessionToken(openID, name string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  openID,
		"name": name,
		"typ":  "session",
		"iat":  now.Unix(),
		"exp":  now.Add(s.sessionTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken parses a session token and returns the embedded
// external identity.
func (s *AuthService) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	tokenType, _ := claims["typ"].(string)
	if tokenType != "session" {
		return "", domain.ErrUnauthorized
	}

	openID, _ := claims["sub"].(string)
	if openID == "" {
		return "", domain.ErrUnauthorized
	}

	return openID, nil
}

// ResolveUser maps a raw session token to the stored user record. Callers
// treat any error as an anonymous request.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*domain.User, error) {
	openID, err := s.ValidateSessionToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.users.FindByOpenID(ctx, openID)
}

type providerUserInfo struct {
	OpenID      string `json:"openId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	LoginMethod string `json:"loginMethod"`
	Platform    string `json:"platform"`
}

func (s *AuthService) fetchUserInfo(ctx context.Context, accessToken string) (*providerUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned status %d", resp.StatusCode)
	}

	var info providerUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
