package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retailorders/internal/dto"
	apperrors "retailorders/internal/errors"
	"retailorders/internal/identity"
)

// MaxUploadSize bounds the whole multipart body of an order form.
const MaxUploadSize = 10 << 20

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int, in dto.CreateOrderInput) (*dto.OrderResponse, error)
	UpdateOrder(ctx context.Context, userID int, id uint, in dto.UpdateOrderInput) (*dto.OrderResponse, error)
	DeleteOrder(ctx context.Context, userID int, id uint) error
	GetOrder(ctx context.Context, userID int, id uint) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, userID int) (*dto.OrderListResponse, error)
}

type OrderController struct {
	responder
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		responder: responder{logger: logger},
		useCase:   useCase,
		logger:    logger,
	}
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	user, _ := identity.FromContext(r.Context())

	resp, err := c.useCase.ListOrders(r.Context(), user.UserID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	user, _ := identity.FromContext(r.Context())

	id, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.GetOrder(r.Context(), user.UserID, id)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	user, _ := identity.FromContext(r.Context())

	form, ok := c.parseOrderForm(w, r, traceID, logger)
	if !ok {
		return
	}
	defer form.close()

	resp, err := c.useCase.CreateOrder(r.Context(), user.UserID, dto.CreateOrderInput{
		ProductID: form.productID,
		Quantity:  form.quantity,
		Image:     form.image,
	})
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	user, _ := identity.FromContext(r.Context())

	id, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	form, ok := c.parseOrderForm(w, r, traceID, logger)
	if !ok {
		return
	}
	defer form.close()

	resp, err := c.useCase.UpdateOrder(r.Context(), user.UserID, id, dto.UpdateOrderInput{
		ProductID: form.productID,
		Quantity:  form.quantity,
		Image:     form.image,
	})
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	user, _ := identity.FromContext(r.Context())

	id, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	if err := c.useCase.DeleteOrder(r.Context(), user.UserID, id); err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type orderForm struct {
	productID int
	quantity  int
	image     *dto.Upload
	closeFn   func() error
}

func (f *orderForm) close() {
	if f.closeFn != nil {
		f.closeFn()
	}
}

// parseOrderForm reads product_id, quantity and the optional upload_image
// file. Whether the image is mandatory is decided by the use case.
func (c *OrderController) parseOrderForm(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (*orderForm, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		logger.Warn("invalid multipart body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid form", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be multipart/form-data of at most 10MB",
		})
		return nil, false
	}

	var details []apperrors.ValidationDetail
	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "product_id",
			Message: "product_id must be an integer",
		})
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be an integer",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return nil, false
	}

	form := &orderForm{productID: productID, quantity: quantity}

	file, header, err := r.FormFile("upload_image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		logger.Warn("invalid upload_image", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid form", apperrors.ValidationDetail{
			Field:   "upload_image",
			Message: "upload_image could not be read",
		})
		return nil, false
	default:
		form.image = &dto.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
		form.closeFn = file.Close
	}

	return form, true
}
