package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// ListVpnUsersUseCase lists the calling admin's own VPN accounts from local
// data only; no panel round-trips on the listing path.
type ListVpnUsersUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	logger      logger.Interface
}

func NewListVpnUsersUseCase(vpnUserRepo domainVpnUser.Repository, log logger.Interface) *ListVpnUsersUseCase {
	return &ListVpnUsersUseCase{
		vpnUserRepo: vpnUserRepo,
		logger:      log,
	}
}

func (uc *ListVpnUsersUseCase) Execute(ctx context.Context, adminID uint, pagination utils.Pagination) ([]*dto.VpnUserResponse, int64, error) {
	users, total, err := uc.vpnUserRepo.ListByAdminID(ctx, adminID, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list vpn users", "admin_id", adminID, "error", err)
		return nil, 0, fmt.Errorf("failed to list vpn users: %w", err)
	}

	responses := make([]*dto.VpnUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToVpnUserResponse(u))
	}
	return responses, total, nil
}
