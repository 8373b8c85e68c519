package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
	"github.com/sandeepkv93/product-catalog-api/internal/observability"
	"github.com/sandeepkv93/product-catalog-api/internal/repository"
)

// ErrProductIDMismatch is returned when a replace payload claims an id other
// than the one addressed by the caller. The store is never touched in that case.
var ErrProductIDMismatch = errors.New("payload id must match the addressed product id")

type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
}

type ReplaceProductInput struct {
	ID    uint
	Name  string
	Price decimal.Decimal
}

type ProductServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo}
}

func (s *ProductServiceImpl) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "create", outcome, time.Since(start)) }()

	product := &domain.Product{Name: strings.TrimSpace(input.Name), Price: input.Price}
	if err := s.repo.Create(product); err != nil {
		outcome = "error"
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) List(ctx context.Context) ([]domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "list", outcome, time.Since(start)) }()

	items, err := s.repo.ListAll()
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return items, nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "get", outcome, time.Since(start)) }()

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}
	return product, nil
}

// Replace overwrites the whole record at id. The payload must address the same
// id it arrived at; a mismatch fails before any store access.
func (s *ProductServiceImpl) Replace(ctx context.Context, id uint, input ReplaceProductInput) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "replace", outcome, time.Since(start)) }()

	if input.ID != id {
		outcome = "bad_request"
		return ErrProductIDMismatch
	}

	product := &domain.Product{ID: id, Name: strings.TrimSpace(input.Name), Price: input.Price}
	if err := s.repo.Replace(product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			outcome = "not_found"
		case errors.Is(err, repository.ErrProductConflict):
			outcome = "conflict"
		default:
			outcome = "error"
		}
		return err
	}
	return nil
}

func (s *ProductServiceImpl) DeleteByID(ctx context.Context, id uint) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "delete", outcome, time.Since(start)) }()

	if err := s.repo.DeleteByID(id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return err
	}
	return nil
}
