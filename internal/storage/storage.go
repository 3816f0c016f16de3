// Package storage владеет единственным подключением к базе данных на время
// жизни процесса: открывает движок, применяет схему и закрывает подключение.
// По умолчанию используется встроенный SQLite в файле на устройстве,
// PostgreSQL поддерживается как внешний движок.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Регистрация встроенного драйвера sqlite.
	_ "modernc.org/sqlite"

	"github.com/saranzafar/hotel-book/internal/config"
	"github.com/saranzafar/hotel-book/internal/migrations"
)

// MemoryPath — путь, при котором SQLite открывается в памяти.
const MemoryPath = ":memory:"

// Storage инкапсулирует подключение к базе данных и его жизненный цикл.
// Экземпляр создаётся явно и передаётся в репозитории.
type Storage struct {
	cfg config.Storage
	log *slog.Logger

	mu      sync.RWMutex
	db      *sql.DB
	dialect Dialect
}

// New создаёт хранилище с настройками cfg. Подключение открывается в Open.
func New(cfg config.Storage, log *slog.Logger) *Storage {
	return &Storage{
		cfg: cfg,
		log: log,
	}
}

// Open открывает подключение и применяет схему. Повторный вызов
// при открытом подключении ничего не делает.
func (s *Storage) Open(ctx context.Context) error {
	const op = "storage.Open"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dialect := Dialect(s.cfg.Driver)
	if dialect == DialectSQLite {
		if err := registerFuncs(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	db, err := sql.Open(dialect.driverName(), dsn(s.cfg))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if dialect == DialectSQLite {
		// Одно физическое подключение: база в памяти живёт, пока живо оно,
		// а конкурентные запросы выстраиваются в очередь пула.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.migrate(dialect, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	s.db = db
	s.dialect = dialect
	s.log.Info("storage opened", slog.String("driver", string(dialect)))
	return nil
}

// migrate применяет схему. SQLite мигрирует на основном подключении,
// PostgreSQL на отдельном пуле, который migrations.Run закрывает сам.
func (s *Storage) migrate(dialect Dialect, db *sql.DB) error {
	if dialect != DialectPostgres {
		return migrations.Run(db, string(dialect))
	}
	mdb, err := sql.Open(dialect.driverName(), dsn(s.cfg))
	if err != nil {
		return err
	}
	defer mdb.Close()
	return migrations.Run(mdb, string(dialect))
}

// Handle возвращает открытое подключение или ErrNotInitialized.
func (s *Storage) Handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// Dialect возвращает диалект SQL открытого подключения.
func (s *Storage) Dialect() Dialect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialect
}

// Close закрывает подключение. После Close вызовы Handle возвращают
// ErrNotInitialized; повторный Close ничего не делает.
func (s *Storage) Close() error {
	const op = "storage.Close"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.dialect = ""
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("storage closed")
	return nil
}

func dsn(cfg config.Storage) string {
	if Dialect(cfg.Driver) == DialectPostgres {
		return cfg.DSN
	}
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if cfg.Path == MemoryPath {
		return "file::memory:?" + pragmas
	}
	return "file:" + filepath.Clean(cfg.Path) + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}
