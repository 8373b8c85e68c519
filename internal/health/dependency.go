package health

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-api/internal/observability"
)

type DBChecker struct {
	db *gorm.DB
}

func NewDBChecker(db *gorm.DB) Checker {
	if db == nil {
		return nil
	}
	return &DBChecker{db: db}
}

func (c *DBChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	res := CheckResult{Name: "db", Healthy: true}
	defer func() {
		outcome := "healthy"
		if !res.Healthy {
			outcome = "unhealthy"
		}
		observability.RecordHealthCheckResult(ctx, res.Name, outcome)
		observability.RecordHealthCheckDuration(ctx, res.Name, time.Since(start))
	}()
	if c.db == nil {
		res.Healthy = false
		res.Error = "db not configured"
		return res
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		res.Healthy = false
		res.Error = err.Error()
		return res
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		res.Healthy = false
		res.Error = err.Error()
	}
	return res
}
