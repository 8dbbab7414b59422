// Package current реализует HTTP-обработчик чтения текущей подписки пользователя.
//
// Пользователь без записи о подписке прозрачно дозаписывается на бесплатный план.
package current

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/middlewarectx"
	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// Handler обрабатывает HTTP-запросы чтения подписки.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	EnsureOnPlan(ctx context.Context, user *models.User, planName string) (bool, error)
	CurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionInfo, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{
		log:  log,
		subs: subs,
	}
}

// ServeHTTP godoc
// @Summary Текущая подписка
// @Description Возвращает действующую подписку текущего пользователя.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Подписка найдена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscriptions/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("no user in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(http.StatusUnauthorized, "unauthorized"))
		return
	}

	// Подписка могла не завестись при регистрации, дозаписываем на бесплатный план.
	if _, err := h.subs.EnsureOnPlan(r.Context(), user, models.FreePlanName); err != nil {
		log.Error("failed to ensure subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to get subscription"))
		return
	}

	sub, err := h.subs.CurrentSubscription(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to get subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to get subscription"))
		return
	}

	log.Info("subscription retrieved", slog.String("uid", user.UID))
	render.JSON(w, r, response.OK(http.StatusOK, "Subscription retrieved successfully", map[string]any{
		"user_subscription": sub,
	}))
}
