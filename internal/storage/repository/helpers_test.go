package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saranzafar/hotel-book/internal/lib/days"
	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
)

// TestDataFactory создаёт тестовые записи через репозитории.
type TestDataFactory struct {
	clients       *ClientRepository
	subscriptions *SubscriptionRepository
	payments      *PaymentRepository
	phone         int
}

// NewTestDataFactory создаёт фабрику тестовых данных поверх хранилища st.
func NewTestDataFactory(st *storage.Storage) *TestDataFactory {
	return &TestDataFactory{
		clients:       NewClientRepository(st),
		subscriptions: NewSubscriptionRepository(st),
		payments:      NewPaymentRepository(st),
		phone:         3001000000,
	}
}

// CreateClient создаёт клиента с уникальным телефоном.
func (f *TestDataFactory) CreateClient(t *testing.T, name string) int {
	t.Helper()
	f.phone++
	id, err := f.clients.Create(context.Background(), models.Client{
		Name:  name,
		Phone: "0" + strconv.Itoa(f.phone),
	})
	require.NoError(t, err)
	return id
}

// CreateSubscription создаёт активный абонемент клиента на даты start..end.
func (f *TestDataFactory) CreateSubscription(t *testing.T, clientID int, start, end string,
	total, paid float64, active bool) int {
	t.Helper()
	totalDays, err := days.Between(start, end)
	require.NoError(t, err)
	id, err := f.subscriptions.Create(context.Background(), models.Subscription{
		ClientID:    clientID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   totalDays,
		TotalAmount: total,
		AmountPaid:  paid,
		IsActive:    active,
	})
	require.NoError(t, err)
	return id
}

// CreatePayment записывает платёж по абонементу.
func (f *TestDataFactory) CreatePayment(t *testing.T, subscriptionID int, amount float64, date string) int {
	t.Helper()
	id, err := f.payments.Create(context.Background(), models.Payment{
		SubscriptionID: subscriptionID,
		Amount:         amount,
		PaymentDate:    date,
		PaymentMethod:  "cash",
	})
	require.NoError(t, err)
	return id
}

// dateFromToday возвращает дату YYYY-MM-DD со сдвигом от сегодняшней даты UTC.
func dateFromToday(offset int) string {
	return days.Format(time.Now().UTC().AddDate(0, 0, offset))
}
