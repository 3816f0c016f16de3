package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saranzafar/hotel-book/internal/lib/sqltime"
	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
)

const subscriptionColumns = `ms.id, ms.client_id, ms.start_date, ms.end_date, ms.total_days,
	ms.plan_type, ms.total_amount, ms.amount_paid, ms.is_active, COALESCE(ms.notes, ''),
	ms.created_at, ms.last_modified`

const joinedColumns = subscriptionColumns + `, c.name, c.phone`

// SubscriptionRepository хранит абонементы питания.
type SubscriptionRepository struct {
	storage *storage.Storage
}

// NewSubscriptionRepository создаёт репозиторий абонементов поверх хранилища st.
func NewSubscriptionRepository(st *storage.Storage) *SubscriptionRepository {
	return &SubscriptionRepository{storage: st}
}

// Create вставляет абонемент и возвращает его ID. Пустой тип плана
// заменяется на models.PlanCustom. Несуществующий клиент даёт
// ошибку внешнего ключа.
func (r *SubscriptionRepository) Create(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "repository.SubscriptionRepository.Create"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	if sub.PlanType == "" {
		sub.PlanType = models.PlanCustom
	}
	query := `INSERT INTO mess_subscriptions (client_id, start_date, end_date, total_days,
				  plan_type, total_amount, amount_paid, is_active, notes)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  RETURNING id`
	var id int
	err = h.db.QueryRowContext(ctx, h.q(query),
		sub.ClientID, sub.StartDate, sub.EndDate, sub.TotalDays, sub.PlanType,
		sub.TotalAmount, sub.AmountPaid, sub.IsActive, sub.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return id, nil
}

// List возвращает все абонементы с именем и телефоном клиента, новые первыми.
func (r *SubscriptionRepository) List(ctx context.Context) ([]*models.Subscription, error) {
	const op = "repository.SubscriptionRepository.List"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + joinedColumns + `
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  ORDER BY ms.created_at DESC, ms.id DESC`
	rows, err := h.db.QueryContext(ctx, h.q(query))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanSubscriptions(rows, true, op)
}

// ListActive возвращает активные абонементы по убыванию даты начала.
func (r *SubscriptionRepository) ListActive(ctx context.Context) ([]*models.Subscription, error) {
	const op = "repository.SubscriptionRepository.ListActive"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + joinedColumns + `
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  WHERE ms.is_active = ?
			  ORDER BY ms.start_date DESC, ms.id DESC`
	rows, err := h.db.QueryContext(ctx, h.q(query), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanSubscriptions(rows, true, op)
}

// Search возвращает абонементы клиентов, имя которых содержит term
// без учёта регистра, новые первыми.
func (r *SubscriptionRepository) Search(ctx context.Context, term string) ([]*models.Subscription, error) {
	const op = "repository.SubscriptionRepository.Search"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + joinedColumns + `
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  WHERE ` + h.dialect.Lower("c.name") + ` LIKE ? ESCAPE '\'
			  ORDER BY ms.created_at DESC, ms.id DESC`
	rows, err := h.db.QueryContext(ctx, h.q(query), likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanSubscriptions(rows, true, op)
}

// Read возвращает абонемент с данными клиента или nil, если его нет.
func (r *SubscriptionRepository) Read(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "repository.SubscriptionRepository.Read"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + joinedColumns + `
			  FROM mess_subscriptions ms
			  JOIN clients c ON c.id = ms.client_id
			  WHERE ms.id = ?`
	sub, err := scanSubscription(h.db.QueryRowContext(ctx, h.q(query), id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListByClient возвращает абонементы клиента, новые первыми.
// Данные клиента не присоединяются.
func (r *SubscriptionRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Subscription, error) {
	const op = "repository.SubscriptionRepository.ListByClient"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM mess_subscriptions ms
			  WHERE ms.client_id = ?
			  ORDER BY ms.created_at DESC, ms.id DESC`
	rows, err := h.db.QueryContext(ctx, h.q(query), clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanSubscriptions(rows, false, op)
}

// Update перезаписывает изменяемые поля абонемента, обновляет last_modified
// и возвращает количество изменённых строк. Клиент абонемента не меняется.
func (r *SubscriptionRepository) Update(ctx context.Context, id int, sub models.Subscription) (int, error) {
	const op = "repository.SubscriptionRepository.Update"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	if sub.PlanType == "" {
		sub.PlanType = models.PlanCustom
	}
	query := `UPDATE mess_subscriptions
			  SET start_date = ?, end_date = ?, total_days = ?, plan_type = ?, total_amount = ?,
			      amount_paid = ?, is_active = ?, notes = ?, last_modified = CURRENT_TIMESTAMP
			  WHERE id = ?`
	result, err := h.db.ExecContext(ctx, h.q(query),
		sub.StartDate, sub.EndDate, sub.TotalDays, sub.PlanType, sub.TotalAmount,
		sub.AmountPaid, sub.IsActive, sub.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return rowsAffected(result, op)
}

// Remove удаляет абонемент вместе с его платежами и возвращает
// количество удалённых абонементов.
func (r *SubscriptionRepository) Remove(ctx context.Context, id int) (int, error) {
	const op = "repository.SubscriptionRepository.Remove"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	result, err := h.db.ExecContext(ctx, h.q(`DELETE FROM mess_subscriptions WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return rowsAffected(result, op)
}

func scanSubscription(row rowScanner, joined bool) (*models.Subscription, error) {
	var (
		s            models.Subscription
		createdAt    sqltime.Time
		lastModified sqltime.Time
	)
	dest := []any{
		&s.ID, &s.ClientID, &s.StartDate, &s.EndDate, &s.TotalDays,
		&s.PlanType, &s.TotalAmount, &s.AmountPaid, &s.IsActive, &s.Notes,
		&createdAt, &lastModified,
	}
	if joined {
		dest = append(dest, &s.ClientName, &s.ClientPhone)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.LastModified = lastModified.Time
	return &s, nil
}

func scanSubscriptions(rows *sql.Rows, joined bool, op string) ([]*models.Subscription, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows, joined)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
