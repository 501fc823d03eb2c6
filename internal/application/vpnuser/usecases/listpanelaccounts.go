package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
	domainVpnUser "github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// ListPanelAccountsUseCase pages through the panel's accounts and matches
// each one against the local ledger. Untracked accounts surface drift: they
// exist on the panel but no row claims them.
type ListPanelAccountsUseCase struct {
	vpnUserRepo domainVpnUser.Repository
	panel       provisioning.Client
	logger      logger.Interface
}

func NewListPanelAccountsUseCase(
	vpnUserRepo domainVpnUser.Repository,
	panel provisioning.Client,
	log logger.Interface,
) *ListPanelAccountsUseCase {
	return &ListPanelAccountsUseCase{
		vpnUserRepo: vpnUserRepo,
		panel:       panel,
		logger:      log,
	}
}

func (uc *ListPanelAccountsUseCase) Execute(ctx context.Context, pagination utils.Pagination) ([]*dto.PanelAccountResponse, int64, error) {
	offset := (pagination.Page - 1) * pagination.PageSize

	accounts, total, err := uc.panel.ListUsers(ctx, offset, pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list panel accounts", "error", err)
		return nil, 0, err
	}

	out := make([]*dto.PanelAccountResponse, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		row := &dto.PanelAccountResponse{
			Username:    account.Username,
			Status:      account.Status,
			UsedTraffic: account.UsedTraffic,
			DataLimit:   account.DataLimit,
			Expire:      account.Expire,
		}

		local, err := uc.vpnUserRepo.GetByUsername(ctx, account.Username)
		switch {
		case err == nil:
			row.Tracked = true
			row.AdminID = local.AdminID()
		case !errors.IsNotFoundError(err):
			return nil, 0, err
		}

		out = append(out, row)
	}

	return out, total, nil
}
