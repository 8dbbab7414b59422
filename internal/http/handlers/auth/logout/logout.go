// Package logout реализует HTTP-обработчик выхода из аккаунта.
//
// Токены не хранятся на сервере, поэтому выход сводится к удалению
// refresh-cookie. Уже выданный access-токен остаётся валидным до истечения.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pulsepoint/pulsepoint-api/internal/http/cookie"
	"github.com/pulsepoint/pulsepoint-api/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход из аккаунта
// @Description Удаляет refresh-cookie текущей сессии.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie.ClearRefreshToken(w)

	log.Info("user logged out")
	render.JSON(w, r, response.OK(http.StatusOK, "User logged out successfully", nil))
}
