package domain

import "time"

type Order struct {
	ID                uint
	OrderID           string
	UserID            int
	UserEmail         string
	ProductID         int
	ProductName       string
	Quantity          int
	Status            string
	UploadedImageURL  string
	EstimatedDelivery time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanUserEdit reports whether the customer may still change or delete the order.
func (o Order) CanUserEdit() bool {
	return o.Status == OrderStatusOrdered || o.Status == OrderStatusProcessing
}
