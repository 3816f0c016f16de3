// Package dashboard отдаёт сводку главного экрана.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/saranzafar/hotel-book/internal/http/handlers"
	"github.com/saranzafar/hotel-book/internal/http/response"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/models"
)

// Service собирает сводку.
type Service interface {
	Snapshot(ctx context.Context) (*models.Dashboard, error)
}

// Handler обрабатывает GET /dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка главного экрана
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		handlers.Fail(w, r, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(snapshot))
}
