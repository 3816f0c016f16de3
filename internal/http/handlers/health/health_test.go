package health

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranzafar/hotel-book/internal/storage"
	"github.com/saranzafar/hotel-book/internal/storage/storagetest"
)

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("open storage", func(t *testing.T) {
		w := httptest.NewRecorder()
		New(logger, storagetest.NewInMemory(t)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"OK","data":{"status":"ok"}}`, w.Body.String())
	})

	t.Run("closed storage", func(t *testing.T) {
		st := storage.New(storagetest.MemoryConfig(), logger)
		w := httptest.NewRecorder()
		New(logger, st).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "storage is not ready")
	})
}
