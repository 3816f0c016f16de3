// Package dashboard собирает сводку главного экрана из независимых
// агрегирующих запросов, выполняемых параллельно.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/models"
)

// Repository определяет агрегирующие запросы сводки.
type Repository interface {
	CountActive(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	ListOverdue(ctx context.Context) ([]*models.OverdueSubscription, error)
	ListExpiringSoon(ctx context.Context) ([]*models.Subscription, error)
	CountClients(ctx context.Context) (int, error)
}

// Service собирает сводку.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт сервис сводки.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Snapshot выполняет все агрегаты параллельно и объединяет результат.
// Первая ошибка отменяет остальные запросы и возвращается вызывающему.
func (s *Service) Snapshot(ctx context.Context) (*models.Dashboard, error) {
	const op = "services.dashboard.Snapshot"

	var result models.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.repo.CountActive(gctx)
		if err != nil {
			return err
		}
		result.ActiveSubscriptions = count
		return nil
	})

	g.Go(func() error {
		total, err := s.repo.TotalRevenue(gctx)
		if err != nil {
			return err
		}
		result.TotalRevenue = total
		return nil
	})

	g.Go(func() error {
		overdue, err := s.repo.ListOverdue(gctx)
		if err != nil {
			return err
		}
		result.Overdue = overdue
		result.OverdueCount = len(overdue)
		return nil
	})

	g.Go(func() error {
		expiring, err := s.repo.ListExpiringSoon(gctx)
		if err != nil {
			return err
		}
		result.ExpiringSoon = expiring
		result.ExpiringCount = len(expiring)
		return nil
	})

	g.Go(func() error {
		count, err := s.repo.CountClients(gctx)
		if err != nil {
			return err
		}
		result.TotalClients = count
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("failed to build dashboard", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
