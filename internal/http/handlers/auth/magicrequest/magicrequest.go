// Package magicrequest реализует HTTP-обработчик запроса одноразовой ссылки входа.
//
// Ссылка отправляется на почту и действует ограниченное время.
package magicrequest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	magiclink "github.com/pulsepoint/pulsepoint-api/internal/services/magiclink"
)

// Request — структура входных данных для запроса magic-link.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler обрабатывает HTTP-запросы выпуска magic-link.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выпуска magic-link.
type Service interface {
	RequestMagicLink(ctx context.Context, email string) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос одноразовой ссылки входа
// @Description Выпускает magic-link и отправляет её на почту пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта пользователя"
// @Success 200 {object} response.Response "Ссылка отправлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/magic-link [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.magicrequest"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	link, err := h.auth.RequestMagicLink(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, magiclink.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(http.StatusNotFound, "user not found"))
			return
		}
		log.Error("failed to create magic link", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(http.StatusInternalServerError, "failed to create magic link"))
		return
	}

	log.Info("magic link sent", slog.String("email", req.Email))
	render.JSON(w, r, response.OK(http.StatusOK, "Magic link sent successfully", map[string]any{
		"magic-link": link,
	}))
}
