// Package hotelbook собирает приложение: открывает хранилище, создаёт
// репозитории и сервисы и, если включено, поднимает локальный HTTP-сервер
// для интерфейса.
package hotelbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/saranzafar/hotel-book/internal/config"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
	"github.com/saranzafar/hotel-book/internal/monitoring"
	clientservice "github.com/saranzafar/hotel-book/internal/services/client"
	dashboardservice "github.com/saranzafar/hotel-book/internal/services/dashboard"
	paymentservice "github.com/saranzafar/hotel-book/internal/services/payment"
	subservice "github.com/saranzafar/hotel-book/internal/services/subscription"
	"github.com/saranzafar/hotel-book/internal/storage"
	"github.com/saranzafar/hotel-book/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — собранное приложение. Сервисы доступны вызывающему коду напрямую.
type App struct {
	Clients       *clientservice.Service
	Subscriptions *subservice.Service
	Payments      *paymentservice.Service
	Dashboard     *dashboardservice.Service

	storage *storage.Storage
	handler http.Handler
	server  *http.Server
	logger  *slog.Logger
}

// New открывает хранилище и собирает сервисы. HTTP-сервер создаётся,
// только если он включён в конфиге.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.hotelbook.New"

	st := storage.New(cfg.Storage, logger)
	if err := st.Open(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		Clients:       clientservice.New(repository.NewClientRepository(st), logger),
		Subscriptions: subservice.New(repository.NewSubscriptionRepository(st), logger),
		Payments:      paymentservice.New(repository.NewPaymentRepository(st), logger),
		Dashboard:     dashboardservice.New(repository.NewDashboardRepository(st), logger),
		storage:       st,
		logger:        logger,
	}

	if cfg.HTTPServer.Enabled {
		router := chi.NewRouter()
		RegisterRoutes(router, Deps{
			Logger:        logger,
			Storage:       st,
			Clients:       app.Clients,
			Subscriptions: app.Subscriptions,
			Payments:      app.Payments,
			Dashboard:     app.Dashboard,
			Metrics:       monitoring.New(),
			Limiter:       rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		})
		app.handler = router
		app.server = &http.Server{
			Addr:         cfg.AddressHTTP,
			Handler:      router,
			ReadTimeout:  cfg.TimeoutHTTP,
			WriteTimeout: cfg.TimeoutHTTP,
			IdleTimeout:  cfg.IdleTimeout,
		}
	}
	return app, nil
}

// Handler возвращает HTTP-обработчик приложения или nil, если сервер выключен.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run обслуживает HTTP до отмены ctx, затем останавливает сервер
// и закрывает хранилище. Без HTTP-сервера просто ждёт отмены.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		<-ctx.Done()
		return a.Close()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if cerr := a.Close(); cerr != nil {
			a.logger.Error("failed to close storage", sl.Err(cerr))
		}
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		return errors.Join(err, a.Close())
	}
}

// Close закрывает хранилище.
func (a *App) Close() error {
	return a.storage.Close()
}
