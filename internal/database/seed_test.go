package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/product-catalog-api/internal/domain"
)

func newSeedDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedFillsEmptyTable(t *testing.T) {
	db := newSeedDBForTest(t)

	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if want := int64(len(DemoProducts())); count != want {
		t.Fatalf("expected %d products, got %d", want, count)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newSeedDBForTest(t)

	if err := Seed(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if want := int64(len(DemoProducts())); count != want {
		t.Fatalf("re-seed must not duplicate rows, got %d", count)
	}
}

func TestSeedSkipsNonEmptyTable(t *testing.T) {
	db := newSeedDBForTest(t)

	existing := domain.Product{Name: "Handmade", Price: DemoProducts()[0].Price}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("insert existing: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("seed must leave a non-empty table untouched, got %d rows", count)
	}
}
