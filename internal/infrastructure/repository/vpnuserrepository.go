package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type VpnUserRepository struct {
	db *gorm.DB
}

func NewVpnUserRepository(db *gorm.DB) *VpnUserRepository {
	return &VpnUserRepository{db: db}
}

func (r *VpnUserRepository) Create(ctx context.Context, u *vpnuser.VpnUser) error {
	model := mappers.VpnUserToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).
		Omit("Admin", "Plan").
		Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("vpn username already exists")
		}
		return fmt.Errorf("failed to create vpn user: %w", err)
	}

	u.SetID(model.ID)
	return nil
}

func (r *VpnUserRepository) Update(ctx context.Context, u *vpnuser.VpnUser) error {
	model := mappers.VpnUserToModel(u)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.VpnUserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan_id":           model.PlanID,
			"expires_at":        model.ExpiresAt,
			"is_active":         model.IsActive,
			"remote_user_id":    model.RemoteUserID,
			"subscription_link": model.SubscriptionLink,
			"qr_code_link":      model.QRCodeLink,
			"notes":             model.Notes,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update vpn user: %w", result.Error)
	}

	return nil
}

func (r *VpnUserRepository) GetByID(ctx context.Context, id uint) (*vpnuser.VpnUser, error) {
	var model models.VpnUserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vpn user not found")
		}
		return nil, fmt.Errorf("failed to get vpn user: %w", err)
	}

	return mappers.VpnUserToDomain(&model), nil
}

func (r *VpnUserRepository) GetByUsername(ctx context.Context, username string) (*vpnuser.VpnUser, error) {
	var model models.VpnUserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("username = ?", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vpn user not found")
		}
		return nil, fmt.Errorf("failed to get vpn user by username: %w", err)
	}

	return mappers.VpnUserToDomain(&model), nil
}

func (r *VpnUserRepository) GetByUsernameForAdmin(ctx context.Context, username string, adminID uint) (*vpnuser.VpnUser, error) {
	var model models.VpnUserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("username = ? AND admin_id = ?", username, adminID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vpn user not found")
		}
		return nil, fmt.Errorf("failed to get vpn user for admin: %w", err)
	}

	return mappers.VpnUserToDomain(&model), nil
}

func (r *VpnUserRepository) ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*vpnuser.VpnUser, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.VpnUserModel{}).
		Where("admin_id = ?", adminID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vpn users: %w", err)
	}

	var userModels []models.VpnUserModel
	if err := tx.
		Where("admin_id = ?", adminID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&userModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vpn users: %w", err)
	}

	return mappers.VpnUsersToDomain(userModels), total, nil
}

func (r *VpnUserRepository) CountByPlanID(ctx context.Context, planID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.VpnUserModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count vpn users by plan: %w", err)
	}
	return count, nil
}

func (r *VpnUserRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.VpnUserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vpn user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("vpn user not found")
	}
	return nil
}
