// Package migrations применяет встроенные SQL-миграции схемы
// (clients, mess_subscriptions, payments) для поддерживаемых движков.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Run применяет миграции для движка driver ("sqlite" или "postgres").
// Повторный запуск на уже мигрированной базе не является ошибкой.
//
// Для postgres Run закрывает db: драйвер migrate держит выделенное
// соединение пула до Close и закрывает вместе с ним переданный *sql.DB.
// Передавайте отдельный пул, открытый только для миграций.
// Для sqlite db остаётся открытым.
func Run(db *sql.DB, driver string) (err error) {
	const op = "migrations.Run"

	var dbDriver database.Driver
	switch driver {
	case "sqlite":
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case "postgres":
		dbDriver, err = pgxv5.WithInstance(db, &pgxv5.Config{})
		if err != nil {
			_ = db.Close()
		}
	default:
		return fmt.Errorf("%s: unsupported driver %q", op, driver)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	source, err := iofs.New(files, driver)
	if err != nil {
		closeDriver(dbDriver, driver)
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		closeDriver(dbDriver, driver)
		return fmt.Errorf("%s: %w", op, err)
	}
	if driver == "postgres" {
		defer func() {
			srcErr, dbErr := m.Close()
			if cerr := errors.Join(srcErr, dbErr); cerr != nil && err == nil {
				err = fmt.Errorf("%s: close: %w", op, cerr)
			}
		}()
	}

	// Для sqlite m.Close не вызывается: драйвер закрыл бы единственное
	// подключение, а вместе с ним и базу в памяти.
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func closeDriver(d database.Driver, driver string) {
	if driver == "postgres" {
		_ = d.Close()
	}
}
