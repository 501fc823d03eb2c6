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

// PasswordHasher derives storage hashes from plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CreateAdminUseCase provisions a new admin account on behalf of a super
// admin. The account starts active with a zero balance.
type CreateAdminUseCase struct {
	adminRepo domainAdmin.Repository
	hasher    PasswordHasher
	recorder  *audit.Recorder
	logger    logger.Interface
}

func NewCreateAdminUseCase(
	adminRepo domainAdmin.Repository,
	hasher PasswordHasher,
	recorder *audit.Recorder,
	log logger.Interface,
) *CreateAdminUseCase {
	return &CreateAdminUseCase{
		adminRepo: adminRepo,
		hasher:    hasher,
		recorder:  recorder,
		logger:    log,
	}
}

func (uc *CreateAdminUseCase) Execute(ctx context.Context, superAdminID uint, request dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	uc.logger.Infow("creating admin", "username", request.Username, "super_admin_id", superAdminID)

	hash, err := uc.hasher.Hash(request.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash admin password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	account, err := domainAdmin.NewAdmin(request.Username, request.Email, hash, &superAdminID)
	if err != nil {
		return nil, errors.NewValidationError("invalid admin data", err.Error())
	}

	if err := uc.adminRepo.Create(ctx, account); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to persist admin", "error", err)
		return nil, fmt.Errorf("failed to save admin: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminCreateAdmin, map[string]any{
		"admin_id": account.ID(),
		"username": account.Username(),
	})
	uc.logger.Infow("admin created", "admin_id", account.ID())

	return ToAdminResponse(account), nil
}

// ToAdminResponse maps the entity to its API representation.
func ToAdminResponse(a *domainAdmin.Admin) *dto.AdminResponse {
	return &dto.AdminResponse{
		ID:        a.ID(),
		Username:  a.Username(),
		Email:     a.Email(),
		Balance:   a.Balance().Amount(),
		Currency:  a.Balance().Currency(),
		IsActive:  a.IsActive(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
