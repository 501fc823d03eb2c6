package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/admin/dto"
	"github.com/marzgate/marzgate/internal/application/audit"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// UpdateAdminUseCase applies a partial update to an admin account.
type UpdateAdminUseCase struct {
	adminRepo domainAdmin.Repository
	hasher    PasswordHasher
	recorder  *audit.Recorder
	logger    logger.Interface
}

func NewUpdateAdminUseCase(
	adminRepo domainAdmin.Repository,
	hasher PasswordHasher,
	recorder *audit.Recorder,
	log logger.Interface,
) *UpdateAdminUseCase {
	return &UpdateAdminUseCase{
		adminRepo: adminRepo,
		hasher:    hasher,
		recorder:  recorder,
		logger:    log,
	}
}

func (uc *UpdateAdminUseCase) Execute(ctx context.Context, superAdminID, adminID uint, request dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	account, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if request.Username != nil {
		if err := account.Rename(*request.Username); err != nil {
			return nil, errors.NewValidationError("invalid username", err.Error())
		}
		changed["username"] = *request.Username
	}
	if request.Email != nil {
		if err := account.ChangeEmail(*request.Email); err != nil {
			return nil, errors.NewValidationError("invalid email", err.Error())
		}
		changed["email"] = *request.Email
	}
	if request.Password != nil {
		hash, err := uc.hasher.Hash(*request.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash admin password", "error", err)
			return nil, errors.NewInternalError("failed to process password")
		}
		if err := account.ChangePasswordHash(hash); err != nil {
			return nil, errors.NewValidationError("invalid password", err.Error())
		}
		changed["password"] = "rotated"
	}
	if request.IsActive != nil {
		if *request.IsActive {
			account.Activate()
		} else {
			account.Deactivate()
		}
		changed["is_active"] = *request.IsActive
	}

	if len(changed) == 0 {
		return ToAdminResponse(account), nil
	}

	if err := uc.adminRepo.Update(ctx, account); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update admin", "admin_id", adminID, "error", err)
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminUpdateAdmin, map[string]any{
		"admin_id": adminID,
		"fields":   changed,
	})
	uc.logger.Infow("admin updated", "admin_id", adminID)

	return ToAdminResponse(account), nil
}
