// Package repository реализует хранилище клиентов, абонементов питания
// и платежей поверх storage.Storage. Каждый метод выполняет один
// параметризованный запрос или одну транзакцию и ничего не кэширует
// между вызовами.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saranzafar/hotel-book/internal/storage"
)

type handle struct {
	db      *sql.DB
	dialect storage.Dialect
}

// acquire проверяет контекст и возвращает открытое подключение хранилища.
func acquire(ctx context.Context, st *storage.Storage, op string) (handle, error) {
	select {
	case <-ctx.Done():
		return handle{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	db, err := st.Handle()
	if err != nil {
		return handle{}, fmt.Errorf("%s: %w", op, err)
	}
	return handle{db: db, dialect: st.Dialect()}, nil
}

func (h handle) q(query string) string {
	return h.dialect.Rebind(query)
}

// likePattern превращает строку поиска в шаблон LIKE "содержит" без учёта
// регистра. Колонку в запросе нужно обернуть в Dialect.Lower.
// Символы % и _ из строки ищутся буквально.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func rowsAffected(result sql.Result, op string) (int, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}
