package hotelbook

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/saranzafar/hotel-book/internal/http/handlers/client"
	"github.com/saranzafar/hotel-book/internal/http/handlers/dashboard"
	"github.com/saranzafar/hotel-book/internal/http/handlers/health"
	"github.com/saranzafar/hotel-book/internal/http/handlers/payment"
	"github.com/saranzafar/hotel-book/internal/http/handlers/subscription"
	"github.com/saranzafar/hotel-book/internal/http/middlewarectx"
	"github.com/saranzafar/hotel-book/internal/monitoring"
	clientservice "github.com/saranzafar/hotel-book/internal/services/client"
	dashboardservice "github.com/saranzafar/hotel-book/internal/services/dashboard"
	paymentservice "github.com/saranzafar/hotel-book/internal/services/payment"
	subservice "github.com/saranzafar/hotel-book/internal/services/subscription"
)

//go:embed openapi.json
var openAPI []byte

// Deps — зависимости маршрутов.
type Deps struct {
	Logger        *slog.Logger
	Storage       health.Storage
	Clients       *clientservice.Service
	Subscriptions *subservice.Service
	Payments      *paymentservice.Service
	Dashboard     *dashboardservice.Service
	Metrics       *monitoring.Metrics
	Limiter       *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	clients := client.New(d.Logger, d.Clients, d.Subscriptions)
	subscriptions := subscription.New(d.Logger, d.Subscriptions)
	payments := payment.New(d.Logger, d.Payments)

	r.Get("/health", health.New(d.Logger, d.Storage).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(d.Logger, d.Limiter, d.Metrics))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clients.List)
			r.Post("/", clients.Create)
			r.Get("/{id}", clients.Read)
			r.Put("/{id}", clients.Update)
			r.Delete("/{id}", clients.Remove)
			r.Get("/{id}/subscriptions", clients.Subscriptions)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", subscriptions.List)
			r.Post("/", subscriptions.Create)
			r.Get("/active", subscriptions.ListActive)
			r.Get("/{id}", subscriptions.Read)
			r.Put("/{id}", subscriptions.Update)
			r.Delete("/{id}", subscriptions.Remove)
			r.Get("/{id}/payments", payments.ListBySubscription)
		})

		r.Post("/payments", payments.Create)
		r.Get("/dashboard", dashboard.New(d.Logger, d.Dashboard).ServeHTTP)
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPI)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json")))
}
