package usecase

import (
	"context"
	"io"
	"time"

	"retailorders/internal/delivery"
	"retailorders/internal/domain"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByIDAndUser(ctx context.Context, id uint, userID int) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id uint, productID, quantity int, imageURL string) error
	UpdateStatus(ctx context.Context, id uint, status string, estimatedDelivery time.Time) error
	Delete(ctx context.Context, id uint) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Estimator interface {
	CreateOrderEstimate(status string) (delivery.OrderEstimate, error)
	EstimateDeliveryByStatus(status string) (time.Time, error)
}

type Notifier interface {
	OrderChanged(ctx context.Context, order domain.Order)
	StatusChanged(ctx context.Context, order domain.Order, changedBy string)
}

type HistoryReader interface {
	ListByOrderID(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}
