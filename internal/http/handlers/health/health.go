// Package health отвечает на проверку готовности: хранилище открыто и отвечает.
package health

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/saranzafar/hotel-book/internal/http/handlers"
	"github.com/saranzafar/hotel-book/internal/http/response"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
)

// Storage возвращает открытое подключение к базе.
type Storage interface {
	Handle() (*sql.DB, error)
}

// Handler обрабатывает GET /health.
type Handler struct {
	log     *slog.Logger
	storage Storage
}

// New создаёт Handler.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.ping(r.Context()); err != nil {
		h.log.Error("storage is not ready", slog.String("op", op), sl.Err(err))
		handlers.Fail(w, r, http.StatusServiceUnavailable, "storage is not ready")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}

func (h *Handler) ping(ctx context.Context) error {
	db, err := h.storage.Handle()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}
