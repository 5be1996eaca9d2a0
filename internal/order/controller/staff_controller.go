package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retailorders/internal/dto"
	apperrors "retailorders/internal/errors"
	"retailorders/internal/identity"
)

type StatusUseCase interface {
	ChangeStatus(ctx context.Context, staffID int, id uint, status string) (*dto.OrderResponse, error)
	Dashboard(ctx context.Context) (*dto.OrderListResponse, error)
	History(ctx context.Context, id uint) (*dto.StatusHistoryResponse, error)
}

type StaffController struct {
	responder
	useCase StatusUseCase
	logger  *zap.Logger
}

func NewStaffController(useCase StatusUseCase, logger *zap.Logger) *StaffController {
	return &StaffController{
		responder: responder{logger: logger},
		useCase:   useCase,
		logger:    logger,
	}
}

func (c *StaffController) Dashboard(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	resp, err := c.useCase.Dashboard(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *StaffController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	staff, _ := identity.FromContext(r.Context())

	id, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	resp, err := c.useCase.ChangeStatus(r.Context(), staff.UserID, id, req.Status)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *StaffController) History(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.History(r.Context(), id)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}
