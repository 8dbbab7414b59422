// Package api собирает HTTP-приложение: хранилище, кеш, брокер,
// сервисы и маршруты.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/pulsepoint/pulsepoint-api/internal/cache"
	"github.com/pulsepoint/pulsepoint-api/internal/config"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/jwt"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/rabbitmq"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/migrations"
	authservice "github.com/pulsepoint/pulsepoint-api/internal/services/auth"
	magiclinkservice "github.com/pulsepoint/pulsepoint-api/internal/services/magiclink"
	notifierservice "github.com/pulsepoint/pulsepoint-api/internal/services/notifier"
	sessionservice "github.com/pulsepoint/pulsepoint-api/internal/services/session"
	subservice "github.com/pulsepoint/pulsepoint-api/internal/services/subscription"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// App объединяет зависимости HTTP-приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New создает приложение: подключает хранилище, применяет миграции,
// заводит каталог тарифных планов и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetEmailQueues())
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}

	tokenMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)
	if err := subscriptionService.SeedPlans(ctx); err != nil {
		return nil, err
	}

	magicLinkService := magiclinkservice.NewMagicLinkService(db, cacheRedis, cfg.AppBaseURL, cfg.MagicLinkTTL, logger)
	notifierService := notifierservice.NewNotifierService(rabbitmq.NewClient(rabbitCh), logger)
	authService := authservice.NewAuthService(db, subscriptionService, magicLinkService,
		tokenMaker, notifierService, cfg.RegisterRefreshTokenTTL, logger)
	sessionResolver := sessionservice.NewSessionResolver(db, tokenMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authService, subscriptionService, sessionResolver)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitCh.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
