package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/payment"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, t *payment.Transaction) error {
	model := mappers.PaymentToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).
		Omit("Admin").
		Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("transaction authority already exists")
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	t.SetID(model.ID)
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, t *payment.Transaction) error {
	model := mappers.PaymentToModel(t)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentTransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"authority":    model.Authority,
			"ref_id":       model.RefID,
			"raw_request":  model.RawRequest,
			"raw_response": model.RawResponse,
			"confirmed_at": model.ConfirmedAt,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Transaction, error) {
	var model models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return mappers.PaymentToDomain(&model), nil
}

func (r *PaymentRepository) GetPendingByAuthority(ctx context.Context, authority string) (*payment.Transaction, error) {
	var model models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("authority = ? AND status = ?", authority, string(vo.StatusPending)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("pending transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction by authority: %w", err)
	}

	return mappers.PaymentToDomain(&model), nil
}

// MarkSuccessfulAndCredit finalizes a verified payment. The status update is
// conditional on the row still being PENDING, so concurrent callbacks for the
// same authority cannot credit the balance twice; the loser gets a conflict.
func (r *PaymentRepository) MarkSuccessfulAndCredit(ctx context.Context, t *payment.Transaction) error {
	model := mappers.PaymentToModel(t)

	return db.Transactional(ctx, r.db, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, r.db)

		result := tx.
			Model(&models.PaymentTransactionModel{}).
			Where("id = ? AND status = ?", model.ID, string(vo.StatusPending)).
			Updates(map[string]interface{}{
				"status":       string(vo.StatusSuccessful),
				"ref_id":       model.RefID,
				"raw_response": model.RawResponse,
				"confirmed_at": model.ConfirmedAt,
				"updated_at":   model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to finalize transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewConflictError("transaction is no longer pending")
		}

		credit := tx.
			Model(&models.AdminModel{}).
			Where("id = ?", model.AdminID).
			Update("balance", gorm.Expr("balance + ?", model.Amount))
		if credit.Error != nil {
			return fmt.Errorf("failed to credit admin balance: %w", credit.Error)
		}
		if credit.RowsAffected == 0 {
			return apperrors.NewNotFoundError("admin not found")
		}

		return nil
	})
}

func (r *PaymentRepository) ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*payment.Transaction, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.PaymentTransactionModel{}).
		Where("admin_id = ?", adminID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txModels []models.PaymentTransactionModel
	if err := tx.
		Where("admin_id = ?", adminID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return mappers.PaymentsToDomain(txModels), total, nil
}
