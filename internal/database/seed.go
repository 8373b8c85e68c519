package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
)

// DemoProducts is the catalog inserted by Seed. Exposed so the seed tool can
// report it in dry-run mode.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{Name: "Widget", Price: decimal.New(999, -2)},
		{Name: "Gadget", Price: decimal.New(2450, -2)},
		{Name: "Sprocket", Price: decimal.New(125, -2)},
	}
}

// Seed inserts the demo catalog into an empty products table. A non-empty
// table is left untouched so re-running seed never duplicates rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	products := DemoProducts()
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
