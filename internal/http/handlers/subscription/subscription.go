// Package subscription реализует HTTP-обработчики для абонементов питания.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/saranzafar/hotel-book/internal/http/handlers"
	"github.com/saranzafar/hotel-book/internal/http/response"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/models"
	subservice "github.com/saranzafar/hotel-book/internal/services/subscription"
)

// Service описывает бизнес-логику абонементов.
type Service interface {
	Create(ctx context.Context, req models.DummySubscription) (int, error)
	Search(ctx context.Context, term string) ([]*models.Subscription, error)
	ListActive(ctx context.Context) ([]*models.Subscription, error)
	Read(ctx context.Context, id int) (*models.Subscription, error)
	Update(ctx context.Context, id int, req models.DummySubscriptionUpdate) error
	Remove(ctx context.Context, id int) error
}

// Handler обрабатывает запросы /subscriptions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Create godoc
// @Summary Создать абонемент
// @Description Количество дней считается по датам начала и окончания.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummySubscription true "Данные абонемента"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response "Клиент не найден"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /subscriptions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Create"
	log := h.logger(r, op)

	var req models.DummySubscription
	if !handlers.Decode(w, r, log, &req) {
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, log, err, "could not create subscription")
		return
	}

	log.Info("subscription created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// List godoc
// @Summary Список абонементов
// @Tags Subscriptions
// @Produce  json
// @Param status query string false "all, active или expired"
// @Param q query string false "Подстрока имени клиента"
// @Success 200 {object} response.Response
// @Router /subscriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.List"
	log := h.logger(r, op)

	status := r.URL.Query().Get("status")
	switch status {
	case "", models.FilterAll, models.FilterActive, models.FilterExpired:
	default:
		log.Info("unknown status filter", slog.String("status", status))
		handlers.Fail(w, r, http.StatusBadRequest, "status must be one of all, active, expired")
		return
	}

	subs, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, log, err, "failed to list subscriptions")
		return
	}
	subs = subservice.Filter(subs, models.SubscriptionFilter{Status: status})

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":         len(subs),
		"subscriptions": subs,
	}))
}

// ListActive возвращает активные абонементы по убыванию даты начала.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.ListActive"
	log := h.logger(r, op)

	subs, err := h.service.ListActive(r.Context())
	if err != nil {
		h.fail(w, r, log, err, "failed to list subscriptions")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":         len(subs),
		"subscriptions": subs,
	}))
}

// Read возвращает абонемент {id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Read"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	sub, err := h.service.Read(r.Context(), id)
	if err != nil {
		h.fail(w, r, log, err, "could not read subscription")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(sub))
}

// Update перезаписывает абонемент {id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Update"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}
	var req models.DummySubscriptionUpdate
	if !handlers.Decode(w, r, log, &req) {
		return
	}

	if err = h.service.Update(r.Context(), id, req); err != nil {
		h.fail(w, r, log, err, "could not update subscription")
		return
	}

	log.Info("subscription updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// Remove удаляет абонемент {id} вместе с его платежами.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Remove"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	if err = h.service.Remove(r.Context(), id); err != nil {
		h.fail(w, r, log, err, "could not remove subscription")
		return
	}

	log.Info("subscription removed", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	if handlers.Validation(w, r, log, err) {
		return
	}
	switch {
	case errors.Is(err, subservice.ErrNotFound):
		log.Info("subscription not found", sl.Err(err))
		handlers.Fail(w, r, http.StatusNotFound, "subscription not found")
	case errors.Is(err, subservice.ErrClientNotFound):
		log.Info("client not found", sl.Err(err))
		handlers.Fail(w, r, http.StatusNotFound, "client not found")
	default:
		log.Error(msg, sl.Err(err))
		handlers.Fail(w, r, http.StatusInternalServerError, msg)
	}
}
