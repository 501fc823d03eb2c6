package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// GetVpnUserDetailUseCase merges the local row with live panel state. A
// panel failure degrades the response to local data only instead of
// failing the request.
type GetVpnUserDetailUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	panel       provisioning.Client
	logger      logger.Interface
}

func NewGetVpnUserDetailUseCase(
	vpnUserRepo domainVpnUser.Repository,
	panel provisioning.Client,
	log logger.Interface,
) *GetVpnUserDetailUseCase {
	return &GetVpnUserDetailUseCase{
		vpnUserRepo: vpnUserRepo,
		panel:       panel,
		logger:      log,
	}
}

func (uc *GetVpnUserDetailUseCase) Execute(ctx context.Context, adminID uint, username string) (*dto.VpnUserDetailResponse, error) {
	u, err := uc.vpnUserRepo.GetByUsernameForAdmin(ctx, username, adminID)
	if err != nil {
		return nil, err
	}

	detail := &dto.VpnUserDetailResponse{
		VpnUserResponse: *ToVpnUserResponse(u),
	}

	remote, err := uc.panel.GetUser(ctx, u.Username())
	if err != nil {
		uc.logger.Warnw("panel lookup failed, returning local data only",
			"username", u.Username(),
			"error", err)
		return detail, nil
	}

	detail.RemoteAvailable = true
	detail.Remote = &dto.RemoteUsageBlock{
		Status:      remote.Status,
		UsedTraffic: remote.UsedTraffic,
		DataLimit:   remote.DataLimit,
		Expire:      remote.Expire,
	}
	return detail, nil
}
