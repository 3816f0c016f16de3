// Package payment реализует HTTP-обработчики журнала платежей.
package payment

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
	paymentservice "github.com/saranzafar/hotel-book/internal/services/payment"
)

// Service описывает бизнес-логику платежей.
type Service interface {
	Record(ctx context.Context, req models.DummyPayment) (int, error)
	ListBySubscription(ctx context.Context, subscriptionID int) ([]*models.Payment, error)
}

// Handler обрабатывает запросы /payments.
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
// @Summary Записать платёж
// @Description Увеличивает оплаченную сумму абонемента и добавляет запись в журнал.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response "Абонемент не найден"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /payments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.Create"
	log := h.logger(r, op)

	var req models.DummyPayment
	if !handlers.Decode(w, r, log, &req) {
		return
	}

	id, err := h.service.Record(r.Context(), req)
	if err != nil {
		if handlers.Validation(w, r, log, err) {
			return
		}
		if errors.Is(err, paymentservice.ErrSubscriptionNotFound) {
			log.Info("subscription not found", sl.Err(err))
			handlers.Fail(w, r, http.StatusNotFound, "subscription not found")
			return
		}
		log.Error("failed to record payment", sl.Err(err))
		handlers.Fail(w, r, http.StatusInternalServerError, "could not record payment")
		return
	}

	log.Info("payment recorded", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// ListBySubscription возвращает платежи абонемента {id}, последние первыми.
func (h *Handler) ListBySubscription(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.ListBySubscription"
	log := h.logger(r, op)

	id, err := handlers.URLID(r, "id")
	if err != nil {
		handlers.BadID(w, r, log, err)
		return
	}

	payments, err := h.service.ListBySubscription(r.Context(), id)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		handlers.Fail(w, r, http.StatusInternalServerError, "failed to list payments")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(payments),
		"payments": payments,
	}))
}
