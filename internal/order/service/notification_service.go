package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"retailorders/internal/domain"
	"retailorders/internal/dto"
)

type EventPublisher interface {
	Publish(ctx context.Context, event dto.OrderEvent) error
}

type HistoryRecorder interface {
	Append(ctx context.Context, change domain.StatusChange) error
}

// NotificationService fans an order change out to the event broker and the
// status history. The order row is already committed when it runs, so
// failures here are logged and never returned.
type NotificationService struct {
	publisher EventPublisher
	history   HistoryRecorder
	logger    *zap.Logger
	now       func() time.Time
}

func NewNotificationService(publisher EventPublisher, history HistoryRecorder, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// OrderChanged publishes the current state of the order.
func (s *NotificationService) OrderChanged(ctx context.Context, order domain.Order) {
	if err := s.publisher.Publish(ctx, dto.NewOrderEvent(order)); err != nil {
		s.logger.Error("failed to publish order event",
			zap.String("orderId", order.OrderID),
			zap.String("status", order.Status),
			zap.Error(err),
		)
	}
}

// StatusChanged records a history entry for the order's current status and
// publishes the event.
func (s *NotificationService) StatusChanged(ctx context.Context, order domain.Order, changedBy string) {
	change := domain.StatusChange{
		OrderID:           order.OrderID,
		Status:            order.Status,
		EstimatedDelivery: order.EstimatedDelivery,
		ChangedBy:         changedBy,
		ChangedAt:         s.now().UTC(),
	}
	if err := s.history.Append(ctx, change); err != nil {
		s.logger.Error("failed to record status change",
			zap.String("orderId", order.OrderID),
			zap.String("status", order.Status),
			zap.Error(err),
		)
	}

	s.OrderChanged(ctx, order)
}
