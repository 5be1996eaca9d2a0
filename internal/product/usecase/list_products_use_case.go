package usecase

import (
	"context"

	"retailorders/internal/domain"
	"retailorders/internal/dto"
)

type Service interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ListUseCase struct {
	service Service
}

func NewListUseCase(service Service) *ListUseCase {
	return &ListUseCase{service: service}
}

func (uc *ListUseCase) ListProducts(ctx context.Context) (*dto.ProductListResponse, error) {
	found, err := uc.service.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, dto.ProductDTO{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			ImageURL:    p.ImageURL,
		})
	}

	return &dto.ProductListResponse{Products: products}, nil
}
