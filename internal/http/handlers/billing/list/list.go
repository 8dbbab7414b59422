// Package list реализует HTTP-обработчик каталога тарифных планов.
//
// Каталог публичный и отдаётся без авторизации.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// Handler обрабатывает HTTP-запросы списка тарифных планов.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// Service описывает интерфейс каталога тарифных планов.
type Service interface {
	ListPlans(ctx context.Context) ([]*models.BillingPlan, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{
		log:  log,
		subs: subs,
	}
}

// ServeHTTP godoc
// @Summary Каталог тарифных планов
// @Description Возвращает все тарифные планы по возрастанию цены.
// @Tags Billing
// @Produce  json
// @Success 200 {object} response.Response "Список планов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /billing-plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.subs.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list billing plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to list billing plans"))
		return
	}

	log.Info("billing plans listed", slog.Int("count", len(plans)))
	render.JSON(w, r, response.OK(http.StatusOK, "Billing plans retrieved successfully", map[string]any{
		"billing_plans": plans,
	}))
}
