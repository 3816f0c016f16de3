// Package payment записывает платежи по абонементам.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/saranzafar/hotel-book/internal/lib/days"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/lib/validate"
	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage/repository"
)

// ErrSubscriptionNotFound — платёж по несуществующему абонементу.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Repository определяет методы журнала платежей.
type Repository interface {
	// Create атомарно добавляет платёж и увеличивает оплаченную сумму абонемента.
	Create(ctx context.Context, payment models.Payment) (int, error)
	// ListBySubscription возвращает платежи абонемента, последние первыми.
	ListBySubscription(ctx context.Context, subscriptionID int) ([]*models.Payment, error)
}

// Service реализует операции над платежами.
type Service struct {
	repo     Repository
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

// New создаёт сервис платежей.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate.New(),
		log:      log,
		now:      time.Now,
	}
}

// Record проверяет платёж и записывает его. Пустая дата платежа
// заменяется сегодняшней датой UTC: по тем же часам хранилище считает
// окно истекающих абонементов.
func (s *Service) Record(ctx context.Context, req models.DummyPayment) (int, error) {
	const op = "services.payment.Record"

	if err := validate.Struct(s.validate, req); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	paymentDate := req.PaymentDate
	if paymentDate == "" {
		paymentDate = days.Format(s.now().UTC())
	}

	id, err := s.repo.Create(ctx, models.Payment{
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		PaymentDate:    paymentDate,
		PaymentMethod:  strings.TrimSpace(req.PaymentMethod),
		Notes:          strings.TrimSpace(req.Notes),
	})
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment recorded", sl.Op(op),
		slog.Int("id", id),
		slog.Int("subscription_id", req.SubscriptionID),
		slog.Float64("amount", req.Amount))
	return id, nil
}

// ListBySubscription возвращает журнал платежей абонемента.
func (s *Service) ListBySubscription(ctx context.Context, subscriptionID int) ([]*models.Payment, error) {
	const op = "services.payment.ListBySubscription"

	payments, err := s.repo.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}
