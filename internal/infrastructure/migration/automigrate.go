package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates the schema straight from the model
// definitions. Intended for development; production uses script-based
// strategies.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SuperAdminModel{},
		&models.AdminModel{},
		&models.PlanModel{},
		&models.VpnUserModel{},
		&models.PaymentTransactionModel{},
		&models.ActionLogModel{},
	}
}
