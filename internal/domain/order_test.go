package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Now().UTC()
	eta := createdAt.Add(10 * 24 * time.Hour)

	order := Order{
		ID:                1,
		OrderID:           "ORD-202610150930121234",
		UserID:            7,
		UserEmail:         "jane@example.com",
		ProductID:         3,
		ProductName:       "Desk Lamp",
		Quantity:          2,
		Status:            OrderStatusOrdered,
		UploadedImageURL:  "https://bucket.s3.us-east-1.amazonaws.com/user_uploads/7/lamp.png",
		EstimatedDelivery: eta,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}

	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, "ORD-202610150930121234", order.OrderID)
	assert.Equal(t, 7, order.UserID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, OrderStatusOrdered, order.Status)
	assert.Equal(t, eta, order.EstimatedDelivery)
}

func TestOrder_CanUserEdit(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{OrderStatusOrdered, true},
		{OrderStatusProcessing, true},
		{OrderStatusTransit, false},
		{OrderStatusReadyForDelivery, false},
		{OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			order := Order{Status: tt.status}
			assert.Equal(t, tt.want, order.CanUserEdit())
		})
	}
}

func TestOrderStatuses_LifecycleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"ORDERED",
		"PROCESSING",
		"TRANSIT",
		"READY_FOR_DELIVERY",
		"DELIVERED",
	}, OrderStatuses())
}

func TestIsKnownStatus(t *testing.T) {
	assert.True(t, IsKnownStatus(OrderStatusTransit))
	assert.False(t, IsKnownStatus("transit"))
	assert.False(t, IsKnownStatus("CANCELED"))
}
