package client

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
	clientservice "github.com/saranzafar/hotel-book/internal/services/client"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyClient) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Search(ctx context.Context, term string) ([]*models.Client, error) {
	args := m.Called(ctx, term)
	if res := args.Get(0); res != nil {
		return res.([]*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Read(ctx context.Context, id int) (*models.Client, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int, req models.DummyClient) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockService) Remove(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) ListByClient(ctx context.Context, clientID int) ([]*models.Subscription, error) {
	args := m.Called(ctx, clientID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
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
			name: "created",
			body: `{"name":"Ali Raza","phone":"03001234567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.DummyClient{Name: "Ali Raza", Phone: "03001234567"}).Return(5, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"status":"OK","data":{"id":5}}`,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "duplicate phone",
			body: `{"name":"Bilal","phone":"03001234567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("services.client.Create: %w", clientservice.ErrDuplicatePhone))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"client with this phone already exists"}`,
		},
		{
			name: "validation error",
			body: `{"name":"Bilal","phone":"123"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(0, validate.Fail("phone is too short"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"phone is too short"}`,
		},
		{
			name: "storage failure",
			body: `{"name":"Bilal","phone":"03001234567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(0, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create client"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service, new(MockSubscriptions))

			req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_List(t *testing.T) {
	service := new(MockService)
	service.On("Search", mock.Anything, "ali").
		Return([]*models.Client{{ID: 1, Name: "Ali Raza", Phone: "03001234567"}}, nil)
	handler := New(newNoopLogger(), service, new(MockSubscriptions))

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/clients?q=ali", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"name":"Ali Raza"`)
	service.AssertExpectations(t)
}

func TestHandler_Read(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			id:   "3",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, 3).Return(&models.Client{ID: 3, Name: "Sana"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Sana"`,
		},
		{
			name:           "bad id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name: "missing",
			id:   "9",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, 9).Return(nil, clientservice.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"client not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(newNoopLogger(), service, new(MockSubscriptions))

			w := httptest.NewRecorder()
			handler.Read(w, withID(httptest.NewRequest(http.MethodGet, "/clients/"+tt.id, nil), tt.id))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	service := new(MockService)
	service.On("Update", mock.Anything, 4, models.DummyClient{Name: "Ali", Phone: "03001234567"}).Return(nil)
	handler := New(newNoopLogger(), service, new(MockSubscriptions))

	req := httptest.NewRequest(http.MethodPut, "/clients/4", strings.NewReader(`{"name":"Ali","phone":"03001234567"}`))
	w := httptest.NewRecorder()
	handler.Update(w, withID(req, "4"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"id":4}}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestHandler_Remove(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "removed", expectedStatus: http.StatusOK},
		{name: "missing", err: clientservice.ErrNotFound, expectedStatus: http.StatusNotFound},
		{name: "has subscriptions", err: clientservice.ErrHasSubscriptions, expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			service.On("Remove", mock.Anything, 2).Return(tt.err)
			handler := New(newNoopLogger(), service, new(MockSubscriptions))

			w := httptest.NewRecorder()
			handler.Remove(w, withID(httptest.NewRequest(http.MethodDelete, "/clients/2", nil), "2"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestHandler_Subscriptions(t *testing.T) {
	subs := new(MockSubscriptions)
	subs.On("ListByClient", mock.Anything, 7).Return([]*models.Subscription{{ID: 1, ClientID: 7, TotalAmount: 100, IsActive: true}}, nil)
	handler := New(newNoopLogger(), new(MockService), subs)

	w := httptest.NewRecorder()
	handler.Subscriptions(w, withID(httptest.NewRequest(http.MethodGet, "/clients/7/subscriptions", nil), "7"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ACTIVE"`)
	assert.Contains(t, w.Body.String(), `"remaining_amount":100`)
	subs.AssertExpectations(t)
}
