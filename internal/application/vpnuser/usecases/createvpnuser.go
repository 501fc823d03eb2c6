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

// CreateVpnUserUseCase provisions a VPN account. The remote panel is the
// source of truth: the account is created there first and the local row is
// only written after the panel confirms. A failed local write triggers a
// compensating remote delete so the two sides cannot drift apart.
type CreateVpnUserUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	planRepo    domainPlan.Repository
	panel       provisioning.Client
	recorder    *audit.Recorder
	logger      logger.Interface
}

func NewCreateVpnUserUseCase(
	vpnUserRepo domainVpnUser.Repository,
	planRepo domainPlan.Repository,
	panel provisioning.Client,
	recorder *audit.Recorder,
	log logger.Interface,
) *CreateVpnUserUseCase {
	return &CreateVpnUserUseCase{
		vpnUserRepo: vpnUserRepo,
		planRepo:    planRepo,
		panel:       panel,
		recorder:    recorder,
		logger:      log,
	}
}

func (uc *CreateVpnUserUseCase) Execute(ctx context.Context, adminID uint, request dto.CreateVpnUserRequest) (*dto.VpnUserResponse, error) {
	uc.logger.Infow("creating vpn user", "username", request.Username, "admin_id", adminID)

	p, err := uc.planRepo.GetByID(ctx, request.PlanID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, errors.NewValidationError("plan is not active")
	}

	// The username is globally unique across admins; reject locally before
	// touching the panel.
	if _, err := uc.vpnUserRepo.GetByUsername(ctx, request.Username); err == nil {
		return nil, errors.NewConflictError("vpn username already exists")
	} else if !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to check vpn username", "error", err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	remote, err := uc.panel.CreateUser(ctx, provisioning.ProvisionRequest{
		Username:     request.Username,
		DataLimitGB:  p.DataLimitGB(),
		DurationDays: p.DurationDays(),
		Note:         request.Notes,
	})
	if err != nil {
		uc.logger.Errorw("remote provisioning failed", "username", request.Username, "error", err)
		return nil, err
	}

	expiresAt := domainVpnUser.ExpiryFor(p.DurationDays(), biztime.NowUTC())

	// The panel may sanitize the requested name; the confirmed name wins.
	u, err := domainVpnUser.NewVpnUser(remote.Username, adminID, p.ID(), expiresAt, request.Notes)
	if err != nil {
		uc.compensateRemote(remote.Username)
		return nil, errors.NewValidationError("invalid vpn user data", err.Error())
	}
	u.SetRemoteInfo(remote.Username, remote.SubscriptionURL, "")

	if err := uc.vpnUserRepo.Create(ctx, u); err != nil {
		uc.compensateRemote(remote.Username)
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to persist vpn user", "error", err)
		return nil, fmt.Errorf("failed to save vpn user: %w", err)
	}

	uc.recorder.RecordAdmin(adminID, auditlog.ActionAdminCreateVpnUser, map[string]any{
		"vpn_user_id": u.ID(),
		"username":    u.Username(),
		"plan_id":     p.ID(),
	})
	uc.logger.Infow("vpn user created", "vpn_user_id", u.ID(), "username", u.Username())

	return ToVpnUserResponse(u), nil
}

// compensateRemote removes a freshly created panel account after a local
// failure. Best-effort: a failed cleanup is logged for manual repair.
func (uc *CreateVpnUserUseCase) compensateRemote(username string) {
	ctx := context.Background()
	if err := uc.panel.DeleteUser(ctx, username); err != nil {
		uc.logger.Errorw("failed to roll back remote account, manual cleanup needed",
			"username", username,
			"error", err)
	}
}

// ToVpnUserResponse maps the entity to its API representation.
func ToVpnUserResponse(u *domainVpnUser.VpnUser) *dto.VpnUserResponse {
	return &dto.VpnUserResponse{
		ID:               u.ID(),
		Username:         u.Username(),
		PlanID:           u.PlanID(),
		ExpiresAt:        u.ExpiresAt(),
		IsActive:         u.IsActive(),
		SubscriptionLink: u.SubscriptionLink(),
		QRCodeLink:       u.QRCodeLink(),
		Notes:            u.Notes(),
		CreatedAt:        u.CreatedAt(),
		UpdatedAt:        u.UpdatedAt(),
	}
}
