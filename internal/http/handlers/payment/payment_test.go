package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saranzafar/hotel-book/internal/lib/validate"
	"github.com/saranzafar/hotel-book/internal/models"
	paymentservice "github.com/saranzafar/hotel-book/internal/services/payment"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Record(ctx context.Context, req models.DummyPayment) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *MockService) ListBySubscription(ctx context.Context, subscriptionID int) ([]*models.Payment, error) {
	args := m.Called(ctx, subscriptionID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "recorded",
			body: `{"subscription_id":3,"amount":500,"payment_method":"cash"}`,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, models.DummyPayment{SubscriptionID: 3, Amount: 500, PaymentMethod: "cash"}).
					Return(12, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","data":{"id":12}}`,
		},
		{
			name: "unknown subscription",
			body: `{"subscription_id":99,"amount":500}`,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("services.payment.Record: %w", paymentservice.ErrSubscriptionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"subscription not found"}`,
		},
		{
			name: "invalid amount",
			body: `{"subscription_id":3,"amount":-1}`,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, mock.Anything).Return(0, validate.Fail("amount must be positive"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"amount must be positive"}`,
		},
		{
			name: "storage failure",
			body: `{"subscription_id":3,"amount":5}`,
			setupMock: func(m *MockService) {
				m.On("Record", mock.Anything, mock.Anything).Return(0, errors.New("database is locked"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not record payment"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service)

			w := httptest.NewRecorder()
			handler.Create(w, httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_ListBySubscription(t *testing.T) {
	service := new(MockService)
	service.On("ListBySubscription", mock.Anything, 3).
		Return([]*models.Payment{{ID: 2, SubscriptionID: 3, Amount: 500, PaymentDate: "2024-01-05"}}, nil)
	handler := New(newNoopLogger(), service)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/3/payments", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.ListBySubscription(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"payment_date":"2024-01-05"`)
	service.AssertExpectations(t)
}
