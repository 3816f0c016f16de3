// Package subscription содержит бизнес-логику абонементов питания:
// расчёт количества дней, значения по умолчанию и проверку дат.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator"

	"github.com/saranzafar/hotel-book/internal/lib/days"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/lib/validate"
	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
)

var (
	// ErrNotFound — абонемента с таким ID нет.
	ErrNotFound = errors.New("subscription not found")
	// ErrClientNotFound — абонемент ссылается на несуществующего клиента.
	ErrClientNotFound = errors.New("client not found")
)

// Repository определяет методы хранилища абонементов.
type Repository interface {
	Create(ctx context.Context, sub models.Subscription) (int, error)
	List(ctx context.Context) ([]*models.Subscription, error)
	ListActive(ctx context.Context) ([]*models.Subscription, error)
	Search(ctx context.Context, term string) ([]*models.Subscription, error)
	Read(ctx context.Context, id int) (*models.Subscription, error)
	ListByClient(ctx context.Context, clientID int) ([]*models.Subscription, error)
	Update(ctx context.Context, id int, sub models.Subscription) (int, error)
	Remove(ctx context.Context, id int) (int, error)
}

// Service реализует операции над абонементами.
type Service struct {
	repo     Repository
	validate *validator.Validate
	log      *slog.Logger
}

// New создаёт сервис абонементов.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate.New(),
		log:      log,
	}
}

// Create проверяет данные, считает количество дней и сохраняет абонемент.
// Без явного флага абонемент создаётся активным.
func (s *Service) Create(ctx context.Context, req models.DummySubscription) (int, error) {
	const op = "services.subscription.Create"

	if err := validate.Struct(s.validate, req); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	totalDays, err := countDays(req.StartDate, req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	sub := models.Subscription{
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalDays:   totalDays,
		PlanType:    planType(req.PlanType),
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
		IsActive:    isActive,
		Notes:       strings.TrimSpace(req.Notes),
	}

	id, err := s.repo.Create(ctx, sub)
	if err != nil {
		if storage.IsConstraint(err, storage.ConstraintForeignKey) {
			return 0, fmt.Errorf("%s: %w", op, ErrClientNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription created", sl.Op(op),
		slog.Int("id", id),
		slog.Int("client_id", sub.ClientID),
		slog.Int("total_days", totalDays))
	return id, nil
}

// List возвращает все абонементы, новые первыми.
func (s *Service) List(ctx context.Context) ([]*models.Subscription, error) {
	const op = "services.subscription.List"

	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ListActive возвращает активные абонементы.
func (s *Service) ListActive(ctx context.Context) ([]*models.Subscription, error) {
	const op = "services.subscription.ListActive"

	subs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// Search ищет абонементы по имени клиента. Пустая строка возвращает полный список.
func (s *Service) Search(ctx context.Context, term string) ([]*models.Subscription, error) {
	const op = "services.subscription.Search"

	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	subs, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// Read возвращает абонемент по ID или ErrNotFound.
func (s *Service) Read(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "services.subscription.Read"

	sub, err := s.repo.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return sub, nil
}

// ListByClient возвращает абонементы клиента, новые первыми.
func (s *Service) ListByClient(ctx context.Context, clientID int) ([]*models.Subscription, error) {
	const op = "services.subscription.ListByClient"

	subs, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// Update проверяет данные, пересчитывает количество дней и перезаписывает абонемент.
func (s *Service) Update(ctx context.Context, id int, req models.DummySubscriptionUpdate) error {
	const op = "services.subscription.Update"

	if err := validate.Struct(s.validate, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	totalDays, err := countDays(req.StartDate, req.EndDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.Update(ctx, id, models.Subscription{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalDays:   totalDays,
		PlanType:    planType(req.PlanType),
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
		IsActive:    req.IsActive,
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.log.Info("subscription updated", sl.Op(op), slog.Int("id", id))
	return nil
}

// Remove удаляет абонемент вместе с его платежами.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.subscription.Remove"

	n, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.log.Info("subscription removed", sl.Op(op), slog.Int("id", id))
	return nil
}

// Filter отбирает из загруженного списка абонементы по статусу и подстроке
// имени клиента без учёта регистра. Порядок сохраняется.
func Filter(subs []*models.Subscription, filter models.SubscriptionFilter) []*models.Subscription {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]*models.Subscription, 0, len(subs))
	for _, sub := range subs {
		switch filter.Status {
		case models.FilterActive:
			if !sub.IsActive {
				continue
			}
		case models.FilterExpired:
			if sub.IsActive {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(sub.ClientName), search) {
			continue
		}
		result = append(result, sub)
	}
	return result
}

func countDays(startDate, endDate string) (int, error) {
	totalDays, err := days.Between(startDate, endDate)
	if err != nil {
		return 0, validate.Fail(err.Error())
	}
	if totalDays <= 0 {
		return 0, validate.Fail("end date must be after start date")
	}
	return totalDays, nil
}

func planType(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return models.PlanCustom
	}
	return p
}
