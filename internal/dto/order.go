package dto

import (
	"io"
	"time"

	"retailorders/internal/domain"
	apperrors "retailorders/internal/errors"
)

// Upload is an image received with an order form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type CreateOrderInput struct {
	ProductID int
	Quantity  int
	Image     *Upload
}

type UpdateOrderInput struct {
	ProductID int
	Quantity  int
	Image     *Upload
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID                uint      `json:"id"`
	OrderID           string    `json:"orderId"`
	UserID            int       `json:"userId"`
	ProductID         int       `json:"productId"`
	ProductName       string    `json:"productName"`
	Quantity          int       `json:"quantity"`
	Status            string    `json:"status"`
	UploadedImageURL  string    `json:"uploadedImageUrl"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	CanEdit           bool      `json:"canEdit"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		OrderID:           o.OrderID,
		UserID:            o.UserID,
		ProductID:         o.ProductID,
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		Status:            o.Status,
		UploadedImageURL:  o.UploadedImageURL,
		EstimatedDelivery: o.EstimatedDelivery,
		CanEdit:           o.CanUserEdit(),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func NewOrderListResponse(orders []domain.Order) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return OrderListResponse{Orders: out}
}

type StatusChangeDTO struct {
	Status            string    `json:"status"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	ChangedBy         string    `json:"changedBy"`
	ChangedAt         time.Time `json:"changedAt"`
}

type StatusHistoryResponse struct {
	OrderID string            `json:"orderId"`
	Changes []StatusChangeDTO `json:"changes"`
}

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Message   string                       `json:"message"`
	Code      string                       `json:"code"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}
