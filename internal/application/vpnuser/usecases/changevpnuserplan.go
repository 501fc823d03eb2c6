package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/biztime"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// ChangeVpnUserPlanUseCase moves one of the admin's accounts to another plan.
// The panel is updated first; the local row only changes after the panel
// accepted the new limits, so the two sides cannot drift apart.
type ChangeVpnUserPlanUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	planRepo    domainPlan.Repository
	panel       provisioning.Client
	recorder    *audit.Recorder
	logger      logger.Interface
}

func NewChangeVpnUserPlanUseCase(
	vpnUserRepo domainVpnUser.Repository,
	planRepo domainPlan.Repository,
	panel provisioning.Client,
	recorder *audit.Recorder,
	log logger.Interface,
) *ChangeVpnUserPlanUseCase {
	return &ChangeVpnUserPlanUseCase{
		vpnUserRepo: vpnUserRepo,
		planRepo:    planRepo,
		panel:       panel,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *ChangeVpnUserPlanUseCase) Execute(ctx context.Context, adminID uint, username string, request dto.ChangeVpnUserPlanRequest) (*dto.VpnUserResponse, error) {
	u, err := uc.vpnUserRepo.GetByUsernameForAdmin(ctx, username, adminID)
	if err != nil {
		return nil, err
	}

	p, err := uc.planRepo.GetByID(ctx, request.PlanID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, errors.NewValidationError("plan is not active")
	}

	if _, err := uc.panel.ModifyUser(ctx, u.Username(), p.DataLimitGB(), p.DurationDays()); err != nil {
		uc.logger.Errorw("remote plan change failed",
			"username", u.Username(),
			"plan_id", p.ID(),
			"error", err)
		return nil, err
	}

	expiresAt := domainVpnUser.ExpiryFor(p.DurationDays(), biztime.NowUTC())
	if err := u.ChangePlan(p.ID(), expiresAt); err != nil {
		return nil, errors.NewValidationError("invalid plan change", err.Error())
	}

	if err := uc.vpnUserRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist plan change, panel already updated",
			"username", u.Username(),
			"plan_id", p.ID(),
			"error", err)
		return nil, fmt.Errorf("failed to save plan change: %w", err)
	}

	uc.recorder.RecordAdmin(adminID, auditlog.ActionAdminChangeVpnUserPlan, map[string]any{
		"vpn_user_id": u.ID(),
		"username":    u.Username(),
		"plan_id":     p.ID(),
	})
	uc.logger.Infow("vpn user plan changed",
		"vpn_user_id", u.ID(),
		"username", u.Username(),
		"plan_id", p.ID())

	return ToVpnUserResponse(u), nil
}
