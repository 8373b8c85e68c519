package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
)

func TestProductRepositoryCRUDFlow(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate product: %v", err)
	}
	repo := NewProductRepository(db)

	created := make([]*domain.Product, 0, 3)
	for i := 0; i < 3; i++ {
		p := &domain.Product{Name: fmt.Sprintf("Product %c", 'A'+i), Price: decimal.New(int64(1000+i), -2)}
		if err := repo.Create(p); err != nil {
			t.Fatalf("create product %d: %v", i, err)
		}
		if p.ID == 0 {
			t.Fatalf("expected store-assigned id for product %d", i)
		}
		created = append(created, p)
	}

	items, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 products, got %d", len(items))
	}
	for i, item := range items {
		if item.ID != created[i].ID {
			t.Fatalf("expected insertion order, got id=%d at index %d want=%d", item.ID, i, created[i].ID)
		}
	}

	loaded, err := repo.FindByID(created[0].ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if loaded.Name != created[0].Name || !loaded.Price.Equal(created[0].Price) {
		t.Fatalf("loaded product mismatch: %+v", loaded)
	}

	replacement := &domain.Product{ID: created[0].ID, Name: "Renamed", Price: decimal.New(9950, -2)}
	if err := repo.Replace(replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}
	updated, err := repo.FindByID(created[0].ID)
	if err != nil {
		t.Fatalf("find updated: %v", err)
	}
	if updated.Name != "Renamed" || !updated.Price.Equal(decimal.New(9950, -2)) {
		t.Fatalf("unexpected updated product: %+v", updated)
	}

	if err := repo.DeleteByID(created[1].ID); err != nil {
		t.Fatalf("delete by id: %v", err)
	}
	if _, err := repo.FindByID(created[1].ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	items, err = repo.ListAll()
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 products after delete, got %d", len(items))
	}
}

func TestProductRepositoryNotFoundCases(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate product: %v", err)
	}
	repo := NewProductRepository(db)

	if _, err := repo.FindByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := repo.Replace(&domain.Product{ID: 999, Name: "x", Price: decimal.New(100, -2)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on replace, got %v", err)
	}
	if err := repo.DeleteByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on delete, got %v", err)
	}
	// delete of a missing id stays a plain not-found on repeat
	if err := repo.DeleteByID(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on repeated delete, got %v", err)
	}
}

func TestProductRepositoryReplaceNeverCreates(t *testing.T) {
	db := newRepositoryDBForTest(t)
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate product: %v", err)
	}
	repo := NewProductRepository(db)

	if err := repo.Replace(&domain.Product{ID: 5, Name: "Ghost", Price: decimal.New(100, -2)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	items, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("replace of a missing id must not create a row, got %d rows", len(items))
	}
}
