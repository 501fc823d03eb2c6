package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/auth/dto"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/shared/authorization"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// SuperAdminLoginUseCase authenticates the root operator accounts.
type SuperAdminLoginUseCase struct {
	superAdminRepo superadmin.Repository
	verifier       PasswordVerifier
	tokens         TokenIssuer
	recorder       *audit.Recorder
	logger         logger.Interface
}

func NewSuperAdminLoginUseCase(
	superAdminRepo superadmin.Repository,
	verifier PasswordVerifier,
	tokens TokenIssuer,
	recorder *audit.Recorder,
	log logger.Interface,
) *SuperAdminLoginUseCase {
	return &SuperAdminLoginUseCase{
		superAdminRepo: superAdminRepo,
		verifier:       verifier,
		tokens:         tokens,
		recorder:       recorder,
		logger:         log,
	}
}

func (uc *SuperAdminLoginUseCase) Execute(ctx context.Context, request dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.superAdminRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("super admin login with unknown username", "username", request.Username)
			return nil, errors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		uc.logger.Errorw("failed to look up super admin for login", "error", err)
		return nil, err
	}

	if err := uc.verifier.Verify(request.Password, account.PasswordHash()); err != nil {
		uc.logger.Warnw("super admin login with wrong password", "username", request.Username)
		uc.recorder.RecordSuperAdmin(account.ID(), auditlog.ActionSuperAdminLoginFailed, map[string]any{
			"username": request.Username,
		})
		return nil, errors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	token, expiresIn, err := uc.tokens.Generate(account.ID(), authorization.RoleSuperAdmin)
	if err != nil {
		uc.logger.Errorw("failed to issue super admin token", "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	uc.recorder.RecordSuperAdmin(account.ID(), auditlog.ActionSuperAdminLoginSuccess, nil)
	uc.logger.Infow("super admin logged in", "super_admin_id", account.ID())

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		Role:        authorization.RoleSuperAdmin.String(),
	}, nil
}
