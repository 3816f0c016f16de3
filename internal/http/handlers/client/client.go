// Package client реализует HTTP-обработчики для клиентов столовой.
package client

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
	clientservice "github.com/saranzafar/hotel-book/internal/services/client"
)

// Service описывает бизнес-логику клиентов.
type Service interface {
	Create(ctx context.Context, req models.DummyClient) (int, error)
	Search(ctx context.Context, term string) ([]*models.Client, error)
	Read(ctx context.Context, id int) (*models.Client, error)
	Update(ctx context.Context, id int, req models.DummyClient) error
	Remove(ctx context.Context, id int) error
}

// SubscriptionLister возвращает абонементы клиента.
type SubscriptionLister interface {
	ListByClient(ctx context.Context, clientID int) ([]*models.Subscription, error)
}

// Handler обрабатывает запросы /clients.
type Handler struct {
	log     *slog.Logger
	service Service
	subs    SubscriptionLister
}

// New создаёт Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, subs SubscriptionLister) *Handler {
	return &Handler{
		log:     log,
		service: service,
		subs:    subs,
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Create godoc
// @Summary Создать клиента
// @Tags Clients
// @Accept  json
// @Produce  json
// @Param request body models.DummyClient true "Данные клиента"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response "Телефон уже занят"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /clients [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.Create"
	log := h.logger(r, op)

	var req models.DummyClient
	if !handlers.Decode(w, r, log, &req) {
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, log, err, "could not create client")
		return
	}

	log.Info("client created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// List godoc
// @Summary Список клиентов
// @Description Параметр q ищет по подстроке имени или телефона.
// @Tags Clients
// @Produce  json
// @Param q query string false "Строка поиска"
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.List"
	log := h.logger(r, op)

	clients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, log, err, "failed to list clients")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(clients),
		"clients": clients,
	}))
}

// Read возвращает клиента по {id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.Read"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	client, err := h.service.Read(r.Context(), id)
	if err != nil {
		h.fail(w, r, log, err, "could not read client")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(client))
}

// Update перезаписывает клиента {id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.Update"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}
	var req models.DummyClient
	if !handlers.Decode(w, r, log, &req) {
		return
	}

	if err = h.service.Update(r.Context(), id, req); err != nil {
		h.fail(w, r, log, err, "could not update client")
		return
	}

	log.Info("client updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// Remove удаляет клиента {id}.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.Remove"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	if err = h.service.Remove(r.Context(), id); err != nil {
		h.fail(w, r, log, err, "could not remove client")
		return
	}

	log.Info("client removed", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// Subscriptions возвращает абонементы клиента {id}, новые первыми.
func (h *Handler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.Subscriptions"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	subs, err := h.subs.ListByClient(r.Context(), id)
	if err != nil {
		h.fail(w, r, log, err, "failed to list subscriptions")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":         len(subs),
		"subscriptions": subs,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	if handlers.Validation(w, r, log, err) {
		return
	}
	switch {
	case errors.Is(err, clientservice.ErrNotFound):
		log.Info("client not found", sl.Err(err))
		handlers.Fail(w, r, http.StatusNotFound, "client not found")
	case errors.Is(err, clientservice.ErrDuplicatePhone):
		log.Info("duplicate phone", sl.Err(err))
		handlers.Fail(w, r, http.StatusConflict, "client with this phone already exists")
	case errors.Is(err, clientservice.ErrHasSubscriptions):
		log.Info("client has subscriptions", sl.Err(err))
		handlers.Fail(w, r, http.StatusConflict, "client has subscriptions")
	default:
		log.Error(msg, sl.Err(err))
		handlers.Fail(w, r, http.StatusInternalServerError, msg)
	}
}
