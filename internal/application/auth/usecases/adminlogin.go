package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/auth/dto"
	"github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/shared/authorization"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// invalidCredentialsMsg is shared by every login failure path so the
// response cannot reveal whether the username exists.
const invalidCredentialsMsg = "invalid username or password"

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer signs access tokens for authenticated actors.
type TokenIssuer interface {
	Generate(actorID uint, role authorization.Role) (string, int64, error)
}

// AdminLoginUseCase authenticates admin accounts.
type AdminLoginUseCase struct {
	adminRepo admin.Repository
	verifier  PasswordVerifier
	tokens    TokenIssuer
	recorder  *audit.Recorder
	logger    logger.Interface
}

func NewAdminLoginUseCase(
	adminRepo admin.Repository,
	verifier PasswordVerifier,
	tokens TokenIssuer,
	recorder *audit.Recorder,
	log logger.Interface,
) *AdminLoginUseCase {
	return &AdminLoginUseCase{
		adminRepo: adminRepo,
		verifier:  verifier,
		tokens:    tokens,
		recorder:  recorder,
		logger:    log,
	}
}

func (uc *AdminLoginUseCase) Execute(ctx context.Context, request dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.adminRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("admin login with unknown username", "username", request.Username)
			return nil, errors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		uc.logger.Errorw("failed to look up admin for login", "error", err)
		return nil, err
	}

	if err := uc.verifier.Verify(request.Password, account.PasswordHash()); err != nil {
		uc.logger.Warnw("admin login with wrong password", "username", request.Username)
		uc.recorder.RecordAdmin(account.ID(), auditlog.ActionAdminLoginFailed, map[string]any{
			"username": request.Username,
		})
		return nil, errors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	if !account.IsActive() {
		uc.logger.Warnw("login attempt on deactivated admin", "username", request.Username)
		return nil, errors.NewInactiveError("account is deactivated")
	}

	token, expiresIn, err := uc.tokens.Generate(account.ID(), authorization.RoleAdmin)
	if err != nil {
		uc.logger.Errorw("failed to issue admin token", "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	uc.recorder.RecordAdmin(account.ID(), auditlog.ActionAdminLoginSuccess, nil)
	uc.logger.Infow("admin logged in", "admin_id", account.ID())

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		Role:        authorization.RoleAdmin.String(),
	}, nil
}
