package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retailorders/internal/dto"
)

type mockListUseCase struct {
	ListProductsFunc func(ctx context.Context) (*dto.ProductListResponse, error)
}

func (m *mockListUseCase) ListProducts(ctx context.Context) (*dto.ProductListResponse, error) {
	return m.ListProductsFunc(ctx)
}

func TestHandleListProducts_OK(t *testing.T) {
	uc := &mockListUseCase{
		ListProductsFunc: func(ctx context.Context) (*dto.ProductListResponse, error) {
			return &dto.ProductListResponse{Products: []dto.ProductDTO{{ID: 1, Name: "Lamp", Price: "19.90"}}}, nil
		},
	}

	w := httptest.NewRecorder()
	NewController(uc, zap.NewNop()).HandleListProducts(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp dto.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lamp", resp.Products[0].Name)
	assert.Equal(t, "19.90", resp.Products[0].Price)
}

func TestHandleListProducts_Error(t *testing.T) {
	uc := &mockListUseCase{
		ListProductsFunc: func(ctx context.Context) (*dto.ProductListResponse, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	NewController(uc, zap.NewNop()).HandleListProducts(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.NotEmpty(t, resp.TraceID)
}
