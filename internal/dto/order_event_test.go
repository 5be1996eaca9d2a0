package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailorders/internal/domain"
)

func TestNewOrderEvent_Payload(t *testing.T) {
	local := time.FixedZone("UTC-3", -3*60*60)
	order := domain.Order{
		OrderID:           "ORD-202610150930001234",
		Status:            domain.OrderStatusTransit,
		UserEmail:         "jane@example.com",
		ProductName:       "Desk Lamp",
		Quantity:          2,
		EstimatedDelivery: time.Date(2026, 10, 18, 6, 30, 0, 500000000, local),
	}

	body, err := json.Marshal(NewOrderEvent(order))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"order_id": "ORD-202610150930001234",
		"status": "TRANSIT",
		"user_email": "jane@example.com",
		"product_name": "Desk Lamp",
		"quantity": 2,
		"estimated_delivery": "2026-10-18T09:30:00.5Z"
	}`, string(body))
}
