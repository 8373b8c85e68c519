package database

import (
	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
	)
}
