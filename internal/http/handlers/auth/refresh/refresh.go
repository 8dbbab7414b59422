// Package refresh реализует HTTP-обработчик обновления пары токенов.
//
// Refresh-токен берётся из cookie, при успехе выпускается новая пара
// и cookie перезаписывается. Старый refresh-токен не отзывается.
package refresh

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/cookie"
	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/jwt"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы обновления токенов.
type Handler struct {
	log       *slog.Logger
	auth      Service
	cookieTTL time.Duration
}

// Service описывает интерфейс бизнес-логики обновления токенов.
type Service interface {
	RefreshTokens(refreshToken string) (string, string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, cookieTTL time.Duration) *Handler {
	return &Handler{
		log:       log,
		auth:      auth,
		cookieTTL: cookieTTL,
	}
}

// ServeHTTP godoc
// @Summary Обновление пары токенов
// @Description Выпускает новую пару токенов по refresh-токену из cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Токены обновлены"
// @Failure 401 {object} response.ErrorResponse "Отсутствующий или невалидный refresh-токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/refresh-access-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	current, err := r.Cookie(cookie.RefreshTokenName)
	if err != nil {
		log.Error("refresh token cookie is missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "refresh token is missing"))
		return
	}

	accessToken, refreshToken, err := h.auth.RefreshTokens(current.Value)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrInvalidToken),
			errors.Is(err, jwt.ErrWrongTokenKind):
			log.Error("invalid refresh token", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(http.StatusUnauthorized, "invalid or expired refresh token"))
		default:
			log.Error("failed to refresh tokens", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to refresh tokens"))
		}
		return
	}

	cookie.SetRefreshToken(w, refreshToken, h.cookieTTL)

	log.Info("tokens refreshed")
	render.JSON(w, r, response.OKWithTokens(http.StatusOK, "Tokens refreshed successfully",
		accessToken, refreshToken, nil))
}
