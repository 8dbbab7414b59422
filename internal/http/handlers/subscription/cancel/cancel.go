// Package cancel реализует HTTP-обработчик отмены подписки.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	services "github.com/pulsepoint/pulsepoint-api/internal/services/subscription"
)

// Handler обрабатывает HTTP-запросы отмены подписки.
type Handler struct {
	log      *slog.Logger
	subs     Service
	validate *validator.Validate
}

// Service описывает интерфейс отмены подписок.
type Service interface {
	Cancel(ctx context.Context, subID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{
		log:      log,
		subs:     subs,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отмена подписки
// @Description Удаляет подписку по идентификатору, пользователь возвращается на бесплатный план.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Param subscription_id path string true "Идентификатор подписки"
// @Success 200 {object} response.Response "Подписка отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscriptions/{subscription_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subID := chi.URLParam(r, "subscription_id")
	if err := h.validate.Var(subID, "required,uuid"); err != nil {
		log.Error("invalid subscription id", slog.String("subscription_id", subID))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(http.StatusUnprocessableEntity, "subscription_id must be a valid uuid"))
		return
	}

	if err := h.subs.Cancel(r.Context(), subID); err != nil {
		if errors.Is(err, services.ErrNoSubscription) {
			log.Error("subscription not found", slog.String("subscription_id", subID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "subscription not found"))
			return
		}
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to cancel subscription"))
		return
	}

	log.Info("subscription cancelled", slog.String("subscription_id", subID))
	render.JSON(w, r, response.OK(http.StatusOK, "Subscription cancelled successfully", nil))
}
