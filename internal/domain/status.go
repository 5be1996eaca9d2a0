package domain

import "time"

const (
	OrderStatusOrdered          = "ORDERED"
	OrderStatusProcessing       = "PROCESSING"
	OrderStatusTransit          = "TRANSIT"
	OrderStatusReadyForDelivery = "READY_FOR_DELIVERY"
	OrderStatusDelivered        = "DELIVERED"
)

// OrderStatuses returns the lifecycle in order, first to last.
func OrderStatuses() []string {
	return []string{
		OrderStatusOrdered,
		OrderStatusProcessing,
		OrderStatusTransit,
		OrderStatusReadyForDelivery,
		OrderStatusDelivered,
	}
}

func IsKnownStatus(status string) bool {
	for _, s := range OrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// StatusChange is one entry of an order's status history.
type StatusChange struct {
	OrderID           string
	Status            string
	EstimatedDelivery time.Time
	ChangedBy         string
	ChangedAt         time.Time
}
