package usecase

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"retailorders/internal/delivery"
	"retailorders/internal/domain"
	"retailorders/internal/dto"
	apperrors "retailorders/internal/errors"
)

const retryBackoffStep = 100 * time.Millisecond

type StatusUseCase struct {
	orderRepo        OrderRepository
	history          HistoryReader
	estimator        Estimator
	notifier         Notifier
	logger           *zap.Logger
	maxRetryAttempts int
	sleep            func(time.Duration)
}

func NewStatusUseCase(
	orderRepo OrderRepository,
	history HistoryReader,
	estimator Estimator,
	notifier Notifier,
	logger *zap.Logger,
	maxRetryAttempts int,
) *StatusUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &StatusUseCase{
		orderRepo:        orderRepo,
		history:          history,
		estimator:        estimator,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		sleep:            time.Sleep,
	}
}

// ChangeStatus moves an order to a new status and re-estimates its delivery.
// Free-form labels such as "ready for delivery" are accepted.
func (uc *StatusUseCase) ChangeStatus(ctx context.Context, staffID int, id uint, status string) (*dto.OrderResponse, error) {
	normalized := delivery.Normalize(status)
	if !domain.IsKnownStatus(normalized) {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of ORDERED, PROCESSING, TRANSIT, READY_FOR_DELIVERY, DELIVERED",
		})
	}

	uc.logger.Info("status change started", zap.Uint("id", id), zap.String("status", normalized), zap.Int("staffId", staffID))

	if _, err := uc.orderRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	eta, err := uc.estimator.EstimateDeliveryByStatus(normalized)
	if err != nil {
		return nil, err
	}

	if err := uc.updateStatusWithRetry(ctx, id, normalized, eta); err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.notifier.StatusChanged(ctx, *updated, strconv.Itoa(staffID))
	uc.logger.Info("status changed", zap.String("orderId", updated.OrderID), zap.String("status", normalized), zap.Time("estimatedDelivery", eta))

	resp := dto.NewOrderResponse(*updated)
	return &resp, nil
}

func (uc *StatusUseCase) updateStatusWithRetry(ctx context.Context, id uint, status string, eta time.Time) error {
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := uc.orderRepo.UpdateStatus(ctx, id, status, eta)
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}

		if attempt == uc.maxRetryAttempts {
			break
		}

		uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", uc.maxRetryAttempts), zap.Uint("id", id))
		uc.sleep(backoff(attempt))
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

// backoff grows linearly with the attempt number, with ±20% jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(attempt) * retryBackoffStep
	jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
	return base + jitter
}

// Dashboard lists every order, newest first.
func (uc *StatusUseCase) Dashboard(ctx context.Context) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := dto.NewOrderListResponse(orders)
	return &resp, nil
}

func (uc *StatusUseCase) History(ctx context.Context, id uint) (*dto.StatusHistoryResponse, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes, err := uc.history.ListByOrderID(ctx, order.OrderID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatusHistoryResponse{
		OrderID: order.OrderID,
		Changes: make([]dto.StatusChangeDTO, 0, len(changes)),
	}
	for _, c := range changes {
		resp.Changes = append(resp.Changes, dto.StatusChangeDTO{
			Status:            c.Status,
			EstimatedDelivery: c.EstimatedDelivery,
			ChangedBy:         c.ChangedBy,
			ChangedAt:         c.ChangedAt,
		})
	}

	return resp, nil
}
