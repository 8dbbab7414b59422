// Package remove реализует HTTP-обработчик удаления аккаунта текущего пользователя.
//
// Запись не удаляется физически, а помечается флагом is_deleted.
// Refresh-cookie гасится вместе с аккаунтом.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/cookie"
	"github.com/pulsepoint/pulsepoint-api/internal/http/middlewarectx"
	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы удаления аккаунта.
type Handler struct {
	log   *slog.Logger
	users Service
}

// Service описывает интерфейс мягкого удаления пользователей.
type Service interface {
	SoftDeleteUser(ctx context.Context, userUID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, users Service) *Handler {
	return &Handler{
		log:   log,
		users: users,
	}
}

// ServeHTTP godoc
// @Summary Удаление аккаунта
// @Description Помечает аккаунт текущего пользователя удалённым и гасит refresh-cookie.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Аккаунт удалён"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	current, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("no user in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "unauthorized"))
		return
	}

	if err := h.users.SoftDeleteUser(r.Context(), current.UID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("user not found", slog.String("uid", current.UID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "user not found"))
			return
		}
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to delete user"))
		return
	}

	cookie.ClearRefreshToken(w)

	log.Info("user deleted", slog.String("uid", current.UID))
	render.JSON(w, r, response.OK(http.StatusOK, "User deleted successfully", nil))
}
