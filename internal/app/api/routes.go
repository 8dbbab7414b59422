// Package api предоставляет маршруты для основного приложения.
package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/pulsepoint/pulsepoint-api/internal/config"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/login"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/logout"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/magicrequest"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/magicverify"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/refresh"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/auth/register"
	billinglist "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/billing/list"
	"github.com/pulsepoint/pulsepoint-api/internal/http/handlers/health"
	subcancel "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/subscription/cancel"
	subcurrent "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/subscription/current"
	userread "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/user/read"
	userremove "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/user/remove"
	userupdate "github.com/pulsepoint/pulsepoint-api/internal/http/handlers/user/update"
	"github.com/pulsepoint/pulsepoint-api/internal/http/middlewarectx"
	authservice "github.com/pulsepoint/pulsepoint-api/internal/services/auth"
	sessionservice "github.com/pulsepoint/pulsepoint-api/internal/services/session"
	subservice "github.com/pulsepoint/pulsepoint-api/internal/services/subscription"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	sessionResolver *sessionservice.SessionResolver) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(10, 30)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Get("/billing-plans", billinglist.New(logger, subscriptionService).ServeHTTP)

		r.Post("/auth/register", register.New(logger, authService, cfg.RegisterRefreshTokenTTL).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, cfg.RefreshTokenTTL).ServeHTTP)
		r.Post("/auth/refresh-access-token", refresh.New(logger, authService, cfg.RefreshTokenTTL).ServeHTTP)
		r.Post("/auth/magic-link", magicrequest.New(logger, authService).ServeHTTP)
		r.Get("/auth/magic-link/verify", magicverify.New(logger, authService, cfg.RefreshTokenTTL).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(sessionResolver, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/auth/logout", logout.New(logger).ServeHTTP)
			r.Get("/users/{user_id}", userread.New(logger, db).ServeHTTP)
			r.Patch("/users", userupdate.New(logger, db).ServeHTTP)
			r.Delete("/users", userremove.New(logger, db).ServeHTTP)
			r.Get("/subscriptions/current", subcurrent.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{subscription_id}", subcancel.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
