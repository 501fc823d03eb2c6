package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/admin/dto"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

type GetAdminUseCase struct {
	adminRepo domainAdmin.Repository
	logger    logger.Interface
}

func NewGetAdminUseCase(adminRepo domainAdmin.Repository, log logger.Interface) *GetAdminUseCase {
	return &GetAdminUseCase{
		adminRepo: adminRepo,
		logger:    log,
	}
}

func (uc *GetAdminUseCase) Execute(ctx context.Context, adminID uint) (*dto.AdminResponse, error) {
	account, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return ToAdminResponse(account), nil
}
