package service

import (
	"context"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
)

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Replace(ctx context.Context, id uint, input ReplaceProductInput) error
	DeleteByID(ctx context.Context, id uint) error
}

var _ ProductService = (*ProductServiceImpl)(nil)
