package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
)

// Open picks the driver from the DATABASE_URL scheme. Postgres is the
// production store; sqlite covers local development and tests.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	url := cfg.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return gorm.Open(postgres.Open(url), gormCfg)
	case strings.HasPrefix(url, "sqlite://"):
		return gorm.Open(sqlite.Open(strings.TrimPrefix(url, "sqlite://")), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", url)
	}
}
