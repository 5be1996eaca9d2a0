package usecase

import (
	"context"
	"io"
	"time"

	"github.com/go-sql-driver/mysql"

	"retailorders/internal/delivery"
	"retailorders/internal/domain"
)

func createDeadlockError() error {
	return &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
}

func createDuplicateKeyError() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'orderId'"}
}

type mockOrderRepository struct {
	InsertFunc          func(ctx context.Context, order *domain.Order) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Order, error)
	FindByIDAndUserFunc func(ctx context.Context, id uint, userID int) (*domain.Order, error)
	ListByUserFunc      func(ctx context.Context, userID int) ([]domain.Order, error)
	ListAllFunc         func(ctx context.Context) ([]domain.Order, error)
	UpdateFunc          func(ctx context.Context, id uint, productID, quantity int, imageURL string) error
	UpdateStatusFunc    func(ctx context.Context, id uint, status string, estimatedDelivery time.Time) error
	DeleteFunc          func(ctx context.Context, id uint) error
}

func (m *mockOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	return m.InsertFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindByIDAndUser(ctx context.Context, id uint, userID int) (*domain.Order, error) {
	return m.FindByIDAndUserFunc(ctx, id, userID)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return m.ListAllFunc(ctx)
}

func (m *mockOrderRepository) Update(ctx context.Context, id uint, productID, quantity int, imageURL string) error {
	return m.UpdateFunc(ctx, id, productID, quantity, imageURL)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, status string, estimatedDelivery time.Time) error {
	return m.UpdateStatusFunc(ctx, id, status, estimatedDelivery)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

type mockProductRepository struct {
	FindByIDFunc func(ctx context.Context, id int) (*domain.Product, error)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockUploader struct {
	UploadFunc func(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return m.UploadFunc(ctx, key, body, contentType)
}

type mockEstimator struct {
	CreateOrderEstimateFunc      func(status string) (delivery.OrderEstimate, error)
	EstimateDeliveryByStatusFunc func(status string) (time.Time, error)
}

func (m *mockEstimator) CreateOrderEstimate(status string) (delivery.OrderEstimate, error) {
	return m.CreateOrderEstimateFunc(status)
}

func (m *mockEstimator) EstimateDeliveryByStatus(status string) (time.Time, error) {
	return m.EstimateDeliveryByStatusFunc(status)
}

type notification struct {
	kind      string
	order     domain.Order
	changedBy string
}

type mockNotifier struct {
	calls []notification
}

func (m *mockNotifier) OrderChanged(ctx context.Context, order domain.Order) {
	m.calls = append(m.calls, notification{kind: "order", order: order})
}

func (m *mockNotifier) StatusChanged(ctx context.Context, order domain.Order, changedBy string) {
	m.calls = append(m.calls, notification{kind: "status", order: order, changedBy: changedBy})
}

type mockHistoryReader struct {
	ListByOrderIDFunc func(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

func (m *mockHistoryReader) ListByOrderID(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	return m.ListByOrderIDFunc(ctx, orderID)
}
