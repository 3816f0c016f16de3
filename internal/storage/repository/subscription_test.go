package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saranzafar/hotel-book/internal/models"
	"github.com/saranzafar/hotel-book/internal/storage"
	"github.com/saranzafar/hotel-book/internal/storage/storagetest"
)

func TestSubscriptionRepository_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	st := storagetest.NewInMemory(t)
	repo := NewSubscriptionRepository(st)
	clientID := NewTestDataFactory(st).CreateClient(t, "Ali Raza")

	id, err := repo.Create(ctx, models.Subscription{
		ClientID:    clientID,
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-10",
		TotalDays:   9,
		TotalAmount: 1000,
		IsActive:    true,
	})
	require.NoError(t, err)

	got, err := repo.Read(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, clientID, got.ClientID)
	assert.Equal(t, "Ali Raza", got.ClientName)
	assert.NotEmpty(t, got.ClientPhone)
	assert.Equal(t, "2024-01-01", got.StartDate)
	assert.Equal(t, "2024-01-10", got.EndDate)
	assert.Equal(t, 9, got.TotalDays)
	assert.Equal(t, models.PlanCustom, got.PlanType)
	assert.InDelta(t, 1000.0, got.TotalAmount, 0.001)
	assert.Zero(t, got.AmountPaid)
	assert.True(t, got.IsActive)
	assert.Empty(t, got.Notes)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.LastModified.IsZero())
}

func TestSubscriptionRepository_CreateUnknownClient(t *testing.T) {
	repo := NewSubscriptionRepository(storagetest.NewInMemory(t))

	_, err := repo.Create(context.Background(), models.Subscription{
		ClientID:    42,
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-10",
		TotalDays:   9,
		TotalAmount: 1000,
	})
	require.ErrorIs(t, err, storage.ErrConstraint)
	assert.True(t, storage.IsConstraint(err, storage.ConstraintForeignKey))
}

func TestSubscriptionRepository_Lists(t *testing.T) {
	ctx := context.Background()
	st := storagetest.NewInMemory(t)
	repo := NewSubscriptionRepository(st)
	factory := NewTestDataFactory(st)

	ali := factory.CreateClient(t, "Ali Raza")
	sana := factory.CreateClient(t, "Sana")

	first := factory.CreateSubscription(t, ali, "2024-01-01", "2024-01-31", 3000, 0, true)
	second := factory.CreateSubscription(t, sana, "2024-03-01", "2024-03-31", 3000, 0, false)
	third := factory.CreateSubscription(t, ali, "2024-02-01", "2024-02-29", 2900, 0, true)

	t.Run("list is newest first", func(t *testing.T) {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{third, second, first}, subscriptionIDs(got))
		for _, s := range got {
			assert.NotEmpty(t, s.ClientName)
		}
	})

	t.Run("active only by start date", func(t *testing.T) {
		got, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{third, first}, subscriptionIDs(got))
	})

	t.Run("search by client name", func(t *testing.T) {
		got, err := repo.Search(ctx, "ali")
		require.NoError(t, err)
		assert.Equal(t, []int{third, first}, subscriptionIDs(got))

		got, err = repo.Search(ctx, "SAN")
		require.NoError(t, err)
		assert.Equal(t, []int{second}, subscriptionIDs(got))
	})

	t.Run("search folds non-ascii letters", func(t *testing.T) {
		umit := factory.CreateClient(t, "Ümit Çelik")
		fourth := factory.CreateSubscription(t, umit, "2024-04-01", "2024-04-30", 3000, 0, true)

		for _, term := range []string{"Çelik", "çelik", "ÜMIT"} {
			got, err := repo.Search(ctx, term)
			require.NoError(t, err)
			assert.Equal(t, []int{fourth}, subscriptionIDs(got), term)
		}
	})

	t.Run("by client without join", func(t *testing.T) {
		got, err := repo.ListByClient(ctx, ali)
		require.NoError(t, err)
		assert.Equal(t, []int{third, first}, subscriptionIDs(got))
		for _, s := range got {
			assert.Empty(t, s.ClientName)
		}

		got, err = repo.ListByClient(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSubscriptionRepository_UpdateRead(t *testing.T) {
	ctx := context.Background()
	st := storagetest.NewInMemory(t)
	repo := NewSubscriptionRepository(st)
	factory := NewTestDataFactory(st)

	clientID := factory.CreateClient(t, "Ali")
	id := factory.CreateSubscription(t, clientID, "2024-01-01", "2024-01-10", 1000, 0, true)

	before, err := repo.Read(ctx, id)
	require.NoError(t, err)

	n, err := repo.Update(ctx, id, models.Subscription{
		StartDate:   "2024-02-01",
		EndDate:     "2024-02-15",
		TotalDays:   14,
		PlanType:    "lunch",
		TotalAmount: 1400,
		AmountPaid:  200,
		IsActive:    false,
		Notes:       "paused",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.Read(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, clientID, got.ClientID)
	assert.Equal(t, "2024-02-01", got.StartDate)
	assert.Equal(t, "2024-02-15", got.EndDate)
	assert.Equal(t, 14, got.TotalDays)
	assert.Equal(t, "lunch", got.PlanType)
	assert.InDelta(t, 1400.0, got.TotalAmount, 0.001)
	assert.InDelta(t, 200.0, got.AmountPaid, 0.001)
	assert.False(t, got.IsActive)
	assert.Equal(t, "paused", got.Notes)
	assert.False(t, got.LastModified.Before(before.LastModified))

	n, err = repo.Update(ctx, 999, *got)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSubscriptionRepository_RemoveCascadesPayments(t *testing.T) {
	ctx := context.Background()
	st := storagetest.NewInMemory(t)
	repo := NewSubscriptionRepository(st)
	payments := NewPaymentRepository(st)
	factory := NewTestDataFactory(st)

	clientID := factory.CreateClient(t, "Ali")
	id := factory.CreateSubscription(t, clientID, "2024-01-01", "2024-01-10", 1000, 0, true)
	factory.CreatePayment(t, id, 300, "2024-01-02")

	n, err := repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.Read(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	ledger, err := payments.ListBySubscription(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	n, err = repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func subscriptionIDs(subs []*models.Subscription) []int {
	ids := make([]int, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	return ids
}
