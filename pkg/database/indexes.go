package database

import (
	"gorm.io/gorm"

	"github.com/Payphone-Digital/carrental/pkg/logger"
	"go.uber.org/zap"
)

// OptimizedIndexes creates PostgreSQL-specific indexes that AutoMigrate
// cannot express. Other dialects are skipped.
func OptimizedIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []string{
		// Ledger lookup only ever scans outstanding codes
		"CREATE INDEX IF NOT EXISTS idx_phone_verifications_outstanding ON phone_verifications(mobile_number, verification_code, expires_at) WHERE used = false;",

		// Browse filters and ordering
		"CREATE INDEX IF NOT EXISTS idx_cars_created_at ON cars(created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_cars_price_per_day ON cars(price_per_day);",
		"CREATE INDEX IF NOT EXISTS idx_cars_brand_lower ON cars(LOWER(brand));",
		"CREATE INDEX IF NOT EXISTS idx_cars_transmission_fuel ON cars(transmission, fuel_type);",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.GetLogger().Warn("Failed to create index",
				zap.String("sql", indexSQL),
				zap.Error(err),
			)
		}
	}

	logger.GetLogger().Info("Optimized indexes created", zap.Int("count", len(indexes)))
	return nil
}
