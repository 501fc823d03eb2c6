package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/mappers"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
	"github.com/marzgate/marzgate/internal/shared/db"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, e *auditlog.Entry) error {
	model := mappers.AuditEntryToModel(e)

	if err := db.GetTxFromContext(ctx, r.db).
		Omit("Admin", "SuperAdmin").
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	e.SetID(model.ID)
	return nil
}

func (r *AuditLogRepository) ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*auditlog.Entry, int64, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("admin_id = ?", adminID)
	}, offset, limit)
}

func (r *AuditLogRepository) List(ctx context.Context, offset, limit int) ([]*auditlog.Entry, int64, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB { return tx }, offset, limit)
}

func (r *AuditLogRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) ([]*auditlog.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := scope(tx.Model(&models.ActionLogModel{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var entryModels []models.ActionLogModel
	if err := scope(tx.Model(&models.ActionLogModel{})).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return mappers.AuditEntriesToDomain(entryModels), total, nil
}
