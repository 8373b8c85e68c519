package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entity. IDs are assigned by the store on create and
// never change afterwards. Price is a fixed-point decimal so monetary values
// survive round trips without float drift.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:120;not null;index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
