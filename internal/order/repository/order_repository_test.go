package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
	"foodlocker/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedOrder(t *testing.T, repo *MySQLOrderRepository, id, userID string, status domain.OrderStatus, createdAt time.Time, brandIDs ...string) {
	t.Helper()
	err := repo.Insert(context.Background(), &domain.Order{
		ID:     id,
		UserID: userID,
		Items: []domain.LineItem{
			{ID: "x1", Name: "Fried Chicken", Price: 5000, Quantity: 2},
		},
		Total:          10000,
		DeliveryMethod: domain.DeliveryLocker,
		PaymentMethod:  "card",
		SeatBlock:      "102",
		SeatNumber:     "15",
		Status:         status,
		BrandIDs:       brandIDs,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	})
	require.NoError(t, err)
}

func TestOrderRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)
	seedOrder(t, repo, "order-1", "user-1", domain.StatusReceived, now, "brand-1")

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, domain.StatusReceived, order.Status)
	assert.Equal(t, int64(10000), order.Total)
	assert.Equal(t, domain.DeliveryLocker, order.DeliveryMethod)
	assert.Equal(t, "102", order.SeatBlock)
	assert.Equal(t, "15", order.SeatNumber)
	assert.Equal(t, []string{"brand-1"}, order.BrandIDs)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "x1", order.Items[0].ID)
	assert.Equal(t, int64(5000), order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.CreatedAt.Equal(order.UpdatedAt))
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	order, err := repo.FindByID(context.Background(), "nonexistent-id")
	assert.Error(t, err)
	assert.Nil(t, order)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestOrderRepository_List_StatusAndOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	base := time.Now().UTC().Truncate(time.Millisecond)
	seedOrder(t, repo, "order-old", "user-1", domain.StatusReceived, base.Add(-2*time.Minute))
	seedOrder(t, repo, "order-mid", "user-1", domain.StatusCooking, base.Add(-1*time.Minute))
	seedOrder(t, repo, "order-done", "user-1", domain.StatusCompleted, base)

	orders, err := repo.List(context.Background(), ListQuery{
		Statuses: []domain.OrderStatus{domain.StatusReceived, domain.StatusCooking},
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-mid", orders[0].ID)
	assert.Equal(t, "order-old", orders[1].ID)
}

func TestOrderRepository_List_BrandFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)
	seedOrder(t, repo, "order-a", "user-1", domain.StatusReceived, now, "brand-1", "brand-2")
	seedOrder(t, repo, "order-b", "user-2", domain.StatusReceived, now.Add(time.Second), "brand-3")

	orders, err := repo.List(context.Background(), ListQuery{BrandID: "brand-2"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-a", orders[0].ID)
}

func TestOrderRepository_List_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	orders, err := repo.List(context.Background(), ListQuery{UserID: "no-such-user"})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Len(t, orders, 0)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)
	seedOrder(t, repo, "order-1", "user-1", domain.StatusReceived, now.Add(-time.Second))

	err := repo.UpdateStatus(context.Background(), "order-1", domain.StatusCooking)
	require.NoError(t, err)

	order, err := repo.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCooking, order.Status)
	assert.True(t, order.UpdatedAt.After(order.CreatedAt))
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), "nonexistent-id", domain.StatusCooking)
	assert.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
