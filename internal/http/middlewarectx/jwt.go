// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность access-токена в заголовке Authorization,
// разрешает его в актуального пользователя и кладёт пользователя в контекст
// для дальнейшего использования в обработчиках.
//
// Просроченный или некорректный токен даёт HTTP 401, деактивированный
// аккаунт — HTTP 403.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	session "github.com/pulsepoint/pulsepoint-api/internal/services/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentUser — ключ для пользователя текущей сессии в контексте.
const CurrentUser Key = "current_user"

// Resolver описывает интерфейс разрешения access-токена в пользователя.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет access-токен
// в заголовке Authorization и кладёт его владельца в контекст запроса.
func JWTMiddleware(resolver Resolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(http.StatusUnauthorized, "missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := resolver.Resolve(r.Context(), tokenStr)
			if err != nil {
				switch {
				case errors.Is(err, session.ErrAccountDisabled):
					log.Error("account disabled", sl.Err(err))
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error(http.StatusForbidden, "account disabled"))
				default:
					log.Error("invalid or expired token", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error(http.StatusUnauthorized, "invalid or expired token"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достаёт пользователя текущей сессии из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	return user, ok
}
