package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	model := mappers.AdminToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("admin username or email already exists")
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	a.SetID(model.ID)
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a *admin.Admin) error {
	model := mappers.AdminToModel(a)

	// balance is deliberately absent: it has a single writer, the
	// conditional credit in PaymentRepository.MarkSuccessfulAndCredit.
	// Writing it from a loaded entity could revert a concurrent credit.
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AdminModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"username":      model.Username,
			"email":         model.Email,
			"password_hash": model.PasswordHash,
			"is_active":     model.IsActive,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("admin username or email already exists")
		}
		return fmt.Errorf("failed to update admin: %w", result.Error)
	}

	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uint) (*admin.Admin, error) {
	var model models.AdminModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("admin not found")
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return mappers.AdminToDomain(&model), nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	return r.getByField(ctx, "username", username)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	return r.getByField(ctx, "email", email)
}

func (r *AdminRepository) getByField(ctx context.Context, field, value string) (*admin.Admin, error) {
	var model models.AdminModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where(field+" = ?", value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("admin not found")
		}
		return nil, fmt.Errorf("failed to get admin by %s: %w", field, err)
	}

	return mappers.AdminToDomain(&model), nil
}

func (r *AdminRepository) List(ctx context.Context, offset, limit int) ([]*admin.Admin, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.AdminModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count admins: %w", err)
	}

	var adminModels []models.AdminModel
	if err := tx.
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&adminModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list admins: %w", err)
	}

	return mappers.AdminsToDomain(adminModels), total, nil
}

// Delete removes the admin together with its owned rows. The deletes run in
// one transaction so a failed cascade leaves everything in place. The
// explicit child deletes keep SQLite-backed tests correct where foreign key
// enforcement may be off.
func (r *AdminRepository) Delete(ctx context.Context, id uint) error {
	return db.Transactional(ctx, r.db, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)

		if err := tx.Where("admin_id = ?", id).Delete(&models.VpnUserModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete admin vpn users: %w", err)
		}
		if err := tx.Where("admin_id = ?", id).Delete(&models.PaymentTransactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete admin transactions: %w", err)
		}

		result := tx.Delete(&models.AdminModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete admin: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("admin not found")
		}
		return nil
	})
}
