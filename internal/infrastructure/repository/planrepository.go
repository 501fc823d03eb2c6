package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	model := mappers.PlanToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("plan name already exists")
		}
		return fmt.Errorf("failed to create plan: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	model := mappers.PlanToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"price":         model.Price,
			"duration_days": model.DurationDays,
			"data_limit_gb": model.DataLimitGB,
			"is_active":     model.IsActive,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("plan name already exists")
		}
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return mappers.PlanToDomain(&model), nil
}

func (r *PlanRepository) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, fmt.Errorf("failed to get plan by name: %w", err)
	}

	return mappers.PlanToDomain(&model), nil
}

func (r *PlanRepository) List(ctx context.Context, offset, limit int) ([]*plan.Plan, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.PlanModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var planModels []models.PlanModel
	if err := tx.
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&planModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	return mappers.PlansToDomain(planModels), total, nil
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	var planModels []models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	return mappers.PlansToDomain(planModels), nil
}

// Delete removes the plan unless any VPN user still references it. The
// reference check and delete run in one transaction; the database restrict
// constraint backs the check up under concurrency.
func (r *PlanRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.VpnUserModel{}).
			Where("plan_id = ?", id).
			Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count plan references: %w", err)
		}
		if refs > 0 {
			return apperrors.NewConflictError("plan is referenced by existing VPN users")
		}

		result := tx.Delete(&models.PlanModel{}, id)
		if result.Error != nil {
			if apperrors.IsForeignKeyError(result.Error) {
				return apperrors.NewConflictError("plan is referenced by existing VPN users")
			}
			return fmt.Errorf("failed to delete plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("plan not found")
		}
		return nil
	})
}
