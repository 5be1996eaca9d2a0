package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retailorders/internal/dto"
)

type ListUseCase interface {
	ListProducts(ctx context.Context) (*dto.ProductListResponse, error)
}

type Controller struct {
	useCase ListUseCase
	logger  *zap.Logger
}

func NewController(useCase ListUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	resp, err := c.useCase.ListProducts(r.Context())
	if err != nil {
		c.logger.Error("list products failed", zap.String("traceId", traceID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			TraceID:   traceID,
			Status:    http.StatusInternalServerError,
			Message:   "an unexpected error occurred",
			Code:      "INTERNAL_ERROR",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
