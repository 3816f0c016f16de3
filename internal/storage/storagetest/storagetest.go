// Package storagetest создаёт хранилища для тестов: одноразовую базу SQLite
// в памяти и PostgreSQL в контейнере.
package storagetest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saranzafar/hotel-book/internal/config"
	"github.com/saranzafar/hotel-book/internal/storage"
)

// Logger возвращает логгер, отбрасывающий записи.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MemoryConfig возвращает настройки SQLite в памяти.
func MemoryConfig() config.Storage {
	return config.Storage{Driver: config.DriverSQLite, Path: storage.MemoryPath}
}

// NewInMemory открывает чистую базу SQLite в памяти со схемой.
// Хранилище закрывается по завершении теста.
func NewInMemory(t *testing.T) *storage.Storage {
	t.Helper()

	st := storage.New(MemoryConfig(), Logger())
	require.NoError(t, st.Open(context.Background()))
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// NewPostgres поднимает PostgreSQL в контейнере и открывает на нём хранилище.
// Тест пропускается в режиме -short и без доступного Docker.
func NewPostgres(t *testing.T) *storage.Storage {
	t.Helper()

	st := storage.New(config.Storage{
		Driver: config.DriverPostgres,
		DSN:    PostgresDSN(t),
	}, Logger())
	require.NoError(t, st.Open(context.Background()))
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// PostgresDSN поднимает чистый PostgreSQL в контейнере и возвращает строку
// подключения к нему. Схема не применяется.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container is skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("hotelbook"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, pgContainer)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}
