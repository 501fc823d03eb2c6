package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// DeleteAdminUseCase removes an admin account together with its VPN users
// and payment transactions. The remote panel accounts of the deleted users
// are intentionally left alone; cleaning those up is a manual operation.
type DeleteAdminUseCase struct {
	adminRepo domainAdmin.Repository
	recorder  *audit.Recorder
	logger    logger.Interface
}

func NewDeleteAdminUseCase(
	adminRepo domainAdmin.Repository,
	recorder *audit.Recorder,
	log logger.Interface,
) *DeleteAdminUseCase {
	return &DeleteAdminUseCase{
		adminRepo: adminRepo,
		recorder:  recorder,
		logger:    log,
	}
}

func (uc *DeleteAdminUseCase) Execute(ctx context.Context, superAdminID, adminID uint) error {
	account, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := uc.adminRepo.Delete(ctx, adminID); err != nil {
		uc.logger.Errorw("failed to delete admin", "admin_id", adminID, "error", err)
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminDeleteAdmin, map[string]any{
		"admin_id": adminID,
		"username": account.Username(),
	})
	uc.logger.Infow("admin deleted", "admin_id", adminID)

	return nil
}
