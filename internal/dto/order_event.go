package dto

import (
	"time"

	"retailorders/internal/domain"
)

// OrderEvent is the notification payload published on every order change.
type OrderEvent struct {
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	UserEmail         string `json:"user_email"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

func NewOrderEvent(o domain.Order) OrderEvent {
	return OrderEvent{
		OrderID:           o.OrderID,
		Status:            o.Status,
		UserEmail:         o.UserEmail,
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		EstimatedDelivery: o.EstimatedDelivery.UTC().Format(time.RFC3339Nano),
	}
}
