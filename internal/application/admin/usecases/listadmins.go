package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/admin/dto"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type ListAdminsUseCase struct {
	adminRepo domainAdmin.Repository
	logger    logger.Interface
}

func NewListAdminsUseCase(adminRepo domainAdmin.Repository, log logger.Interface) *ListAdminsUseCase {
	return &ListAdminsUseCase{
		adminRepo: adminRepo,
		logger:    log,
	}
}

func (uc *ListAdminsUseCase) Execute(ctx context.Context, pagination utils.Pagination) ([]*dto.AdminResponse, int64, error) {
	accounts, total, err := uc.adminRepo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list admins", "error", err)
		return nil, 0, fmt.Errorf("failed to list admins: %w", err)
	}

	responses := make([]*dto.AdminResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAdminResponse(a))
	}
	return responses, total, nil
}
