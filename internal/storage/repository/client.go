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

const clientColumns = `id, name, phone, COALESCE(email, ''), COALESCE(address, ''),
	COALESCE(notes, ''), created_at`

// ClientRepository хранит клиентов столовой.
type ClientRepository struct {
	storage *storage.Storage
}

// NewClientRepository создаёт репозиторий клиентов поверх хранилища st.
func NewClientRepository(st *storage.Storage) *ClientRepository {
	return &ClientRepository{storage: st}
}

// Create вставляет клиента и возвращает его ID. Повтор телефона
// возвращает ошибку storage.ErrConstraint, запись не создаётся.
func (r *ClientRepository) Create(ctx context.Context, client models.Client) (int, error) {
	const op = "repository.ClientRepository.Create"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO clients (name, phone, email, address, notes)
			  VALUES (?, ?, ?, ?, ?)
			  RETURNING id`
	var id int
	err = h.db.QueryRowContext(ctx, h.q(query),
		client.Name, client.Phone, client.Email, client.Address, client.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return id, nil
}

// List возвращает всех клиентов по имени.
func (r *ClientRepository) List(ctx context.Context) ([]*models.Client, error) {
	const op = "repository.ClientRepository.List"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  ORDER BY name ASC, id ASC`
	rows, err := h.db.QueryContext(ctx, h.q(query))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanClients(rows, op)
}

// Search возвращает клиентов, у которых имя или телефон содержат term
// без учёта регистра.
func (r *ClientRepository) Search(ctx context.Context, term string) ([]*models.Client, error) {
	const op = "repository.ClientRepository.Search"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE ` + h.dialect.Lower("name") + ` LIKE ? ESCAPE '\'
			     OR ` + h.dialect.Lower("phone") + ` LIKE ? ESCAPE '\'
			  ORDER BY name ASC, id ASC`
	pattern := likePattern(term)
	rows, err := h.db.QueryContext(ctx, h.q(query), pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanClients(rows, op)
}

// Read возвращает клиента по ID или nil, если его нет.
func (r *ClientRepository) Read(ctx context.Context, id int) (*models.Client, error) {
	const op = "repository.ClientRepository.Read"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	client, err := scanClient(h.db.QueryRowContext(ctx, h.q(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return client, nil
}

// Update перезаписывает изменяемые поля клиента и возвращает количество изменённых строк.
func (r *ClientRepository) Update(ctx context.Context, id int, client models.Client) (int, error) {
	const op = "repository.ClientRepository.Update"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	query := `UPDATE clients
			  SET name = ?, phone = ?, email = ?, address = ?, notes = ?
			  WHERE id = ?`
	result, err := h.db.ExecContext(ctx, h.q(query),
		client.Name, client.Phone, client.Email, client.Address, client.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return rowsAffected(result, op)
}

// Remove удаляет клиента и возвращает количество удалённых строк.
// Клиента с абонементами удалить нельзя: вернётся ошибка внешнего ключа.
func (r *ClientRepository) Remove(ctx context.Context, id int) (int, error) {
	const op = "repository.ClientRepository.Remove"
	h, err := acquire(ctx, r.storage, op)
	if err != nil {
		return 0, err
	}

	result, err := h.db.ExecContext(ctx, h.q(`DELETE FROM clients WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.Classify(err))
	}
	return rowsAffected(result, op)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var (
		c         models.Client
		createdAt sqltime.Time
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt.Time
	return &c, nil
}

func scanClients(rows *sql.Rows, op string) ([]*models.Client, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
