package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type SuperAdminRepository struct {
	db *gorm.DB
}

func NewSuperAdminRepository(db *gorm.DB) *SuperAdminRepository {
	return &SuperAdminRepository{db: db}
}

func (r *SuperAdminRepository) Create(ctx context.Context, s *superadmin.SuperAdmin) error {
	model := mappers.SuperAdminToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("super admin username already exists")
		}
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

func (r *SuperAdminRepository) GetByID(ctx context.Context, id uint) (*superadmin.SuperAdmin, error) {
	var model models.SuperAdminModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("super admin not found")
		}
		return nil, fmt.Errorf("failed to get super admin: %w", err)
	}

	return mappers.SuperAdminToDomain(&model), nil
}

func (r *SuperAdminRepository) GetByUsername(ctx context.Context, username string) (*superadmin.SuperAdmin, error) {
	var model models.SuperAdminModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("username = ?", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("super admin not found")
		}
		return nil, fmt.Errorf("failed to get super admin by username: %w", err)
	}

	return mappers.SuperAdminToDomain(&model), nil
}
