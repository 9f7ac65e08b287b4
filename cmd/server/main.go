package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/baravibes/baravibes/internal/config"
	"github.com/baravibes/baravibes/internal/handler"
	"github.com/baravibes/baravibes/internal/repository"
	"github.com/baravibes/baravibes/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// A missing database is a degraded mode, not a startup failure: reads
	// serve defaults and writes soft-fail until the store comes back.
	var db *sqlx.DB
	if conn, err := sqlx.Connect("pgx", cfg.DatabaseURL); err != nil {
		slog.Warn("database unavailable, running degraded", "error", err)
	} else {
		db = conn
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.Migrate(context.Background(), db); err != nil {
			return err
		}
		slog.Info("database connected")
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn: cfg.SentryDSN,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	userRepo := repository.NewUserRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	subRepo := repository.NewSubscriberRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		AuthURL:      cfg.OAuthAuthURL,
		TokenURL:     cfg.OAuthTokenURL,
		UserInfoURL:  cfg.OAuthUserInfoURL,
		JWTSecret:    cfg.JWTSecret,
		OwnerOpenID:  cfg.OwnerOpenID,
	})
	prefSvc := service.NewPreferencesService(prefRepo)
	newsletterSvc := service.NewNewsletterService(subRepo)
	adminSvc := service.NewAdminService(userRepo, subRepo, statsRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	newsletterHandler := handler.NewNewsletterHandler(newsletterSvc)
	preferencesHandler := handler.NewPreferencesHandler(prefSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewAppValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(handler.SessionContext(authSvc))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/api/oauth/start", authHandler.OAuthStart)
	e.GET("/api/oauth/callback", authHandler.OAuthCallback)

	api := e.Group("/api/v1")

	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)

	prefs := api.Group("/preferences", handler.RequireUser())
	prefs.GET("", preferencesHandler.Get)
	prefs.PUT("", preferencesHandler.Save)

	admin := api.Group("/admin", handler.RequireAdmin())
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/subscribers", adminHandler.ListSubscribers)
	admin.DELETE("/subscribers/:id", adminHandler.RemoveSubscriber)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
