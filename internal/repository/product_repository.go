package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
	"github.com/sandeepkv93/product-catalog-api/internal/observability"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrProductConflict marks a replace that affected no rows even though the
	// row still exists. That is a write-write conflict the caller must treat as
	// fatal rather than retry.
	ErrProductConflict = errors.New("product write conflict")
)

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(id uint) (*domain.Product, error)
	ListAll() ([]domain.Product, error)
	Replace(product *domain.Product) error
	DeleteByID(id uint) error
}

type GormProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "create", "success")
	return nil
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "success")
	return &product, nil
}

func (r *GormProductRepository) ListAll() ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	if err := r.db.Order("id asc").Find(&items).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "list_all", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "list_all", "success")
	return items, nil
}

// Replace overwrites the mutable fields of the row addressed by product.ID.
// When the guarded update matches no rows the row is re-read: a vanished row
// means a concurrent delete won (ErrProductNotFound), a row that is still
// there means the conflict has another cause and ErrProductConflict surfaces.
func (r *GormProductRepository) Replace(product *domain.Product) error {
	res := r.db.Model(&domain.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"name":  product.Name,
		"price": product.Price,
	})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "replace", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&domain.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
			observability.RecordRepositoryOperation(context.Background(), "product", "replace", "error")
			return err
		}
		if count == 0 {
			observability.RecordRepositoryOperation(context.Background(), "product", "replace", "not_found")
			return ErrProductNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "product", "replace", "conflict")
		return ErrProductConflict
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "replace", "success")
	return nil
}

func (r *GormProductRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&domain.Product{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "success")
	return nil
}
