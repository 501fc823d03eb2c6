package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// ResetVpnUserTrafficUseCase zeroes an account's traffic counter on the
// panel. Traffic lives remotely, so there is nothing to update locally
// beyond the timestamp.
type ResetVpnUserTrafficUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	panel       provisioning.Client
	recorder    *audit.Recorder
	logger      logger.Interface
}

func NewResetVpnUserTrafficUseCase(
	vpnUserRepo domainVpnUser.Repository,
	panel provisioning.Client,
	recorder *audit.Recorder,
	log logger.Interface,
) *ResetVpnUserTrafficUseCase {
	return &ResetVpnUserTrafficUseCase{
		vpnUserRepo: vpnUserRepo,
		panel:       panel,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *ResetVpnUserTrafficUseCase) Execute(ctx context.Context, adminID uint, username string) error {
	u, err := uc.vpnUserRepo.GetByUsernameForAdmin(ctx, username, adminID)
	if err != nil {
		return err
	}

	if err := uc.panel.ResetUserDataUsage(ctx, u.Username()); err != nil {
		uc.logger.Errorw("remote traffic reset failed", "username", username, "error", err)
		return err
	}

	u.Touch()
	if err := uc.vpnUserRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to touch vpn user after reset", "vpn_user_id", u.ID(), "error", err)
	}

	uc.recorder.RecordAdmin(adminID, auditlog.ActionAdminResetVpnUser, map[string]any{
		"vpn_user_id": u.ID(),
		"username":    u.Username(),
	})
	uc.logger.Infow("vpn user traffic reset", "vpn_user_id", u.ID())

	return nil
}
