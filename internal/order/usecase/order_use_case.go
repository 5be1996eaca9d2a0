package usecase

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"go.uber.org/zap"

	"retailorders/internal/domain"
	"retailorders/internal/dto"
	apperrors "retailorders/internal/errors"
)

const maxQuantity = 10000

type OrderUseCase struct {
	orderRepo          OrderRepository
	productRepo        ProductRepository
	uploader           Uploader
	estimator          Estimator
	notifier           Notifier
	logger             *zap.Logger
	maxOrderIDAttempts int
}

func NewOrderUseCase(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	uploader Uploader,
	estimator Estimator,
	notifier Notifier,
	logger *zap.Logger,
	maxOrderIDAttempts int,
) *OrderUseCase {
	if maxOrderIDAttempts < 1 {
		maxOrderIDAttempts = 1
	}
	return &OrderUseCase{
		orderRepo:          orderRepo,
		productRepo:        productRepo,
		uploader:           uploader,
		estimator:          estimator,
		notifier:           notifier,
		logger:             logger,
		maxOrderIDAttempts: maxOrderIDAttempts,
	}
}

func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID int, in dto.CreateOrderInput) (*dto.OrderResponse, error) {
	uc.logger.Info("create order started", zap.Int("userId", userID), zap.Int("productId", in.ProductID), zap.Int("quantity", in.Quantity))

	details := validateItem(in.ProductID, in.Quantity)
	if in.Image == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "upload_image",
			Message: "an image is required",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	if err := uc.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	imageURL, err := uc.upload(ctx, userID, in.Image)
	if err != nil {
		return nil, err
	}

	order, err := uc.insertWithFreshID(ctx, domain.Order{
		UserID:           userID,
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		UploadedImageURL: imageURL,
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	uc.notifier.StatusChanged(ctx, *created, strconv.Itoa(userID))
	uc.logger.Info("order created", zap.String("orderId", created.OrderID), zap.Time("estimatedDelivery", created.EstimatedDelivery))

	resp := dto.NewOrderResponse(*created)
	return &resp, nil
}

// insertWithFreshID builds an ORDERED estimate and inserts the order, drawing
// a new identifier whenever the previous one is already taken.
func (uc *OrderUseCase) insertWithFreshID(ctx context.Context, order domain.Order) (*domain.Order, error) {
	for attempt := 1; attempt <= uc.maxOrderIDAttempts; attempt++ {
		estimate, err := uc.estimator.CreateOrderEstimate(domain.OrderStatusOrdered)
		if err != nil {
			return nil, err
		}

		order.OrderID = estimate.OrderID
		order.Status = estimate.Status
		order.EstimatedDelivery = estimate.EstimatedDelivery

		err = uc.orderRepo.Insert(ctx, &order)
		if err == nil {
			return &order, nil
		}
		if !isDuplicateKeyError(err) {
			return nil, err
		}

		uc.logger.Warn("order id collision, regenerating",
			zap.String("orderId", estimate.OrderID),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxOrderIDAttempts),
		)
	}

	return nil, apperrors.NewConflictError("could not allocate a unique order id")
}

func (uc *OrderUseCase) UpdateOrder(ctx context.Context, userID int, id uint, in dto.UpdateOrderInput) (*dto.OrderResponse, error) {
	if details := validateItem(in.ProductID, in.Quantity); len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	order, err := uc.editableOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	imageURL := order.UploadedImageURL
	if in.Image != nil {
		imageURL, err = uc.upload(ctx, userID, in.Image)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.orderRepo.Update(ctx, id, in.ProductID, in.Quantity, imageURL); err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderChanged(ctx, *updated)
	uc.logger.Info("order updated", zap.String("orderId", updated.OrderID), zap.Int("userId", userID))

	resp := dto.NewOrderResponse(*updated)
	return &resp, nil
}

func (uc *OrderUseCase) DeleteOrder(ctx context.Context, userID int, id uint) error {
	order, err := uc.editableOrder(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("order deleted", zap.String("orderId", order.OrderID), zap.Int("userId", userID))
	return nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID int, id uint) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewOrderResponse(*order)
	return &resp, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID int) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewOrderListResponse(orders)
	return &resp, nil
}

func (uc *OrderUseCase) editableOrder(ctx context.Context, userID int, id uint) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !order.CanUserEdit() {
		return nil, apperrors.NewConflictError(fmt.Sprintf("order in status %s can no longer be changed", order.Status))
	}

	return order, nil
}

func (uc *OrderUseCase) ensureProduct(ctx context.Context, productID int) error {
	_, err := uc.productRepo.FindByID(ctx, productID)
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "product_id",
			Message: "product does not exist",
		})
	}
	return err
}

func (uc *OrderUseCase) upload(ctx context.Context, userID int, image *dto.Upload) (string, error) {
	key := uploadKey(userID, image.Filename)
	url, err := uc.uploader.Upload(ctx, key, image.Body, image.ContentType)
	if err != nil {
		return "", apperrors.NewInternalError("uploading order image", err)
	}
	return url, nil
}

func uploadKey(userID int, filename string) string {
	return fmt.Sprintf("user_uploads/%d/%s", userID, path.Base(filename))
}

func validateItem(productID, quantity int) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if productID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "product_id",
			Message: "product_id must be a positive integer",
		})
	}

	if quantity < 1 || quantity > maxQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 1 and %d", maxQuantity),
		})
	}

	return details
}
