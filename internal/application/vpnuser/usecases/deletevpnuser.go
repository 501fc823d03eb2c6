package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// DeleteVpnUserUseCase removes a VPN account remote-first: the panel delete
// must succeed (or report the account already gone) before the local row is
// dropped, so a row never outlives its claim on the panel silently.
type DeleteVpnUserUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	panel       provisioning.Client
	recorder    *audit.Recorder
	logger      logger.Interface
}

func NewDeleteVpnUserUseCase(
	vpnUserRepo domainVpnUser.Repository,
	panel provisioning.Client,
	recorder *audit.Recorder,
	log logger.Interface,
) *DeleteVpnUserUseCase {
	return &DeleteVpnUserUseCase{
		vpnUserRepo: vpnUserRepo,
		panel:       panel,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *DeleteVpnUserUseCase) Execute(ctx context.Context, adminID uint, username string) error {
	u, err := uc.vpnUserRepo.GetByUsernameForAdmin(ctx, username, adminID)
	if err != nil {
		return err
	}

	if err := uc.panel.DeleteUser(ctx, u.Username()); err != nil {
		// An account the panel no longer knows is fine to drop locally.
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("remote delete failed", "username", username, "error", err)
			return err
		}
		uc.logger.Warnw("account already absent on panel", "username", username)
	}

	if err := uc.vpnUserRepo.Delete(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to delete vpn user row", "vpn_user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to delete vpn user: %w", err)
	}

	uc.recorder.RecordAdmin(adminID, auditlog.ActionAdminDeleteVpnUser, map[string]any{
		"vpn_user_id": u.ID(),
		"username":    u.Username(),
	})
	uc.logger.Infow("vpn user deleted", "vpn_user_id", u.ID(), "username", u.Username())

	return nil
}
