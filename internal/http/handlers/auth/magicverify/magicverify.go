// Package magicverify реализует HTTP-обработчик проверки одноразовой ссылки входа.
//
// Токен приходит в query-параметре, каждая ссылка гасится при первой проверке.
package magicverify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/cookie"
	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	magiclink "github.com/pulsepoint/pulsepoint-api/internal/services/magiclink"
)

// Handler обрабатывает HTTP-запросы проверки magic-link.
type Handler struct {
	log       *slog.Logger
	auth      Service
	cookieTTL time.Duration
}

// Service описывает интерфейс бизнес-логики входа по magic-link.
type Service interface {
	VerifyMagicLink(ctx context.Context, token string) (*models.User, string, string, error)
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
// @Summary Вход по одноразовой ссылке
// @Description Проверяет magic-link и выпускает пару токенов. Ссылка одноразовая.
// @Tags Auth
// @Produce  json
// @Param token query string true "Токен из ссылки"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Токен не передан"
// @Failure 401 {object} response.ErrorResponse "Невалидная или просроченная ссылка"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/magic-link/verify [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.magicverify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		log.Error("token query parameter is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "token is required"))
		return
	}

	user, accessToken, refreshToken, err := h.auth.VerifyMagicLink(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, magiclink.ErrTokenNotFound),
			errors.Is(err, magiclink.ErrTokenExpired),
			errors.Is(err, magiclink.ErrUserNotFound):
			log.Error("magic link rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(http.StatusUnauthorized, "invalid or expired magic link"))
		default:
			log.Error("failed to verify magic link", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to verify magic link"))
		}
		return
	}

	cookie.SetRefreshToken(w, refreshToken, h.cookieTTL)

	log.Info("login success", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithTokens(http.StatusOK, "Login successful",
		accessToken, refreshToken, map[string]any{
			"user": user.View(),
		}))
}
