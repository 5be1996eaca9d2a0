package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailorders/internal/domain"
	"retailorders/internal/errors"
	"retailorders/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

type fixture struct {
	repo      *MySQLOrderRepository
	userID    int
	productID int
}

func setup(t *testing.T) (*fixture, func()) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)

	f := &fixture{
		repo:      NewMySQLOrderRepository(db),
		userID:    testutil.InsertUser(t, db, "jane@example.com", false),
		productID: testutil.InsertProduct(t, db, "Lamp", "19.90"),
	}
	return f, func() { testutil.CleanupTestDB(t, db) }
}

func (f *fixture) newOrder(orderID string) *domain.Order {
	return &domain.Order{
		OrderID:           orderID,
		UserID:            f.userID,
		ProductID:         f.productID,
		Quantity:          2,
		Status:            domain.OrderStatusOrdered,
		UploadedImageURL:  "https://bucket.s3.us-east-1.amazonaws.com/user_uploads/1/a.png",
		EstimatedDelivery: time.Date(2026, 10, 25, 12, 0, 0, 123000000, time.UTC),
	}
}

func TestOrderRepository_InsertAndFindByID(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	order := f.newOrder("ORD-202610151200000001")
	require.NoError(t, f.repo.Insert(context.Background(), order))
	require.NotZero(t, order.ID)

	found, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, "ORD-202610151200000001", found.OrderID)
	assert.Equal(t, "jane@example.com", found.UserEmail)
	assert.Equal(t, "Lamp", found.ProductName)
	assert.Equal(t, 2, found.Quantity)
	assert.Equal(t, domain.OrderStatusOrdered, found.Status)
	assert.True(t, order.EstimatedDelivery.Equal(found.EstimatedDelivery))
}

func TestOrderRepository_Insert_DuplicateOrderID(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	require.NoError(t, f.repo.Insert(context.Background(), f.newOrder("ORD-DUP")))

	err := f.repo.Insert(context.Background(), f.newOrder("ORD-DUP"))
	require.Error(t, err)

	var mysqlErr *mysql.MySQLError
	require.True(t, stderrors.As(err, &mysqlErr))
	assert.Equal(t, uint16(1062), mysqlErr.Number)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	order, err := f.repo.FindByID(context.Background(), 99999)
	assert.Nil(t, order)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_FindByIDAndUser_OtherUser(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	order := f.newOrder("ORD-1")
	require.NoError(t, f.repo.Insert(context.Background(), order))

	_, err := f.repo.FindByIDAndUser(context.Background(), order.ID, f.userID)
	require.NoError(t, err)

	_, err = f.repo.FindByIDAndUser(context.Background(), order.ID, f.userID+1000)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_ListByUserAndAll(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	first := f.newOrder("ORD-1")
	second := f.newOrder("ORD-2")
	require.NoError(t, f.repo.Insert(context.Background(), first))
	require.NoError(t, f.repo.Insert(context.Background(), second))

	mine, err := f.repo.ListByUser(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "ORD-2", mine[0].OrderID)

	none, err := f.repo.ListByUser(context.Background(), f.userID+1000)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := f.repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderRepository_UpdateAndUpdateStatus(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	order := f.newOrder("ORD-1")
	require.NoError(t, f.repo.Insert(context.Background(), order))

	require.NoError(t, f.repo.Update(context.Background(), order.ID, f.productID, 5, "https://img/new.png"))

	eta := time.Date(2026, 10, 18, 8, 30, 0, 0, time.UTC)
	require.NoError(t, f.repo.UpdateStatus(context.Background(), order.ID, domain.OrderStatusTransit, eta))

	found, err := f.repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)
	assert.Equal(t, "https://img/new.png", found.UploadedImageURL)
	assert.Equal(t, domain.OrderStatusTransit, found.Status)
	assert.True(t, eta.Equal(found.EstimatedDelivery))
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	err := f.repo.UpdateStatus(context.Background(), 99999, domain.OrderStatusTransit, time.Now())
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_Delete(t *testing.T) {
	f, cleanup := setup(t)
	defer cleanup()

	order := f.newOrder("ORD-1")
	require.NoError(t, f.repo.Insert(context.Background(), order))

	require.NoError(t, f.repo.Delete(context.Background(), order.ID))

	err := f.repo.Delete(context.Background(), order.ID)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
