package repository

import (
	"context"
	"fmt"

	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
)

// ExpiringWindowDays — сколько дней вперёд от сегодняшней даты движка
// абонемент считается истекающим.
const ExpiringWindowDays = 7

// DashboardRepository выполняет агрегирующие запросы для главного экрана.
// Каждый метод — один запрос к свежим данным.
type DashboardRepository struct {
	storage *storage.Storage
}

// NewDashboardRepository создаёт репозиторий сводки поверх хранилища st.
func NewDashboardRepository(st *storage.Storage) *DashboardRepository {
	return &DashboardRepository{storage: st}
}

// CountActive возвращает количество активных абонементов.
func (r *DashboardRepository) CountActive(ctx context.Context) (int, error) {
	const op = "repository.DashboardRepository.CountActive"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	var count int
	err = h.db.QueryRowContext(ctx,
		h.q(`SELECT COUNT(*) FROM mess_subscriptions WHERE is_active = ?`), true).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// TotalRevenue возвращает сумму оплат по всем абонементам, 0 при пустой таблице.
func (r *DashboardRepository) TotalRevenue(ctx context.Context) (float64, error) {
	const op = "repository.DashboardRepository.TotalRevenue"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	var total float64
	err = h.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM mess_subscriptions`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListOverdue возвращает активные абонементы с непогашенным остатком
// по возрастанию даты начала.
func (r *DashboardRepository) ListOverdue(ctx context.Context) ([]*models.OverdueSubscription, error) {
	const op = "repository.DashboardRepository.ListOverdue"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + joinedColumns + `, ms.total_amount - ms.amount_paid
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  WHERE ms.is_active = ? AND ms.total_amount - ms.amount_paid > 0
			  ORDER BY ms.start_date ASC, ms.id ASC`
	rows, err := h.db.QueryContext(ctx, h.q(query), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.OverdueSubscription, 0)
	for rows.Next() {
		var o models.OverdueSubscription
		sub, err := scanSubscription(remainingScanner{rows: rows, remaining: &o.RemainingAmount}, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		o.Subscription = *sub
		result = append(result, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListExpiringSoon возвращает активные абонементы, дата окончания которых
// попадает в интервал [сегодня, сегодня+7 дней] включительно по часам движка.
func (r *DashboardRepository) ListExpiringSoon(ctx context.Context) ([]*models.Subscription, error) {
	const op = "repository.DashboardRepository.ListExpiringSoon"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT `+joinedColumns+`
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  WHERE ms.is_active = ? AND %s BETWEEN %s AND %s
			  ORDER BY ms.end_date ASC, ms.id ASC`,
		h.dialect.DateColumn("ms.end_date"),
		h.dialect.CurrentDate(0),
		h.dialect.CurrentDate(ExpiringWindowDays))
	rows, err := h.db.QueryContext(ctx, h.q(query), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanSubscriptions(rows, true, op)
}

// CountClients возвращает общее количество клиентов.
func (r *DashboardRepository) CountClients(ctx context.Context) (int, error) {
	const op = "repository.DashboardRepository.CountClients"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	var count int
	if err = h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// remainingScanner дописывает колонку остатка к колонкам абонемента.
type remainingScanner struct {
	rows      rowScanner
	remaining *float64
}

func (s remainingScanner) Scan(dest ...any) error {
	return s.rows.Scan(append(dest, s.remaining)...)
}
