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

// ErrSubscriptionNotFound — платёж записывается на несуществующий абонемент.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// PaymentRepository ведёт журнал платежей.
type PaymentRepository struct {
	storage *storage.Storage
}

// NewPaymentRepository создаёт репозиторий платежей поверх хранилища st.
func NewPaymentRepository(st *storage.Storage) *PaymentRepository {
	return &PaymentRepository{storage: st}
}

// Create в одной транзакции увеличивает оплаченную сумму абонемента
// и добавляет запись в журнал. Возвращает ID платежа. Увеличение выполняется
// одним UPDATE, поэтому параллельные платежи не теряются.
func (r *PaymentRepository) Create(ctx context.Context, payment models.Payment) (id int, err error) {
	const op = "repository.PaymentRepository.Create"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, h.q(`UPDATE mess_subscriptions
		SET amount_paid = amount_paid + ?, last_modified = CURRENT_TIMESTAMP
		WHERE id = ?`), payment.Amount, payment.SubscriptionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	updated, err := rowsAffected(result, op)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		err = fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		return 0, err
	}

	query := `INSERT INTO payments (subscription_id, amount, payment_date, payment_method, notes)
			  VALUES (?, ?, ?, ?, ?)
			  RETURNING id`
	err = tx.QueryRowContext(ctx, h.q(query),
		payment.SubscriptionID, payment.Amount, payment.PaymentDate,
		payment.PaymentMethod, payment.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListBySubscription возвращает платежи по абонементу, последние первыми.
func (r *PaymentRepository) ListBySubscription(ctx context.Context, subscriptionID int) ([]*models.Payment, error) {
	const op = "repository.PaymentRepository.ListBySubscription"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, subscription_id, amount, payment_date, COALESCE(payment_method, ''),
				  COALESCE(notes, ''), created_at
			  FROM payments
			  WHERE subscription_id = ?
			  ORDER BY payment_date DESC, id DESC`
	rows, err := h.db.QueryContext(ctx, h.q(query), subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanPayments(rows, op)
}

func scanPayments(rows *sql.Rows, op string) ([]*models.Payment, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Payment, 0)
	for rows.Next() {
		var (
			p         models.Payment
			createdAt sqltime.Time
		)
		if err := rows.Scan(&p.ID, &p.SubscriptionID, &p.Amount, &p.PaymentDate,
			&p.PaymentMethod, &p.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.CreatedAt = createdAt.Time
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
