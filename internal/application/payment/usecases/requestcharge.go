package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/payment/dto"
	"github.com/marzgate/marzgate/internal/application/payment/gateway"
	domainAdmin "github.com/marzgate/marzgate/internal/domain/admin"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainPayment "github.com/marzgate/marzgate/internal/domain/payment"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

const gatewayName = "zarinpal"

// RequestChargeUseCase starts a balance top-up. A PENDING transaction with
// the gateway authority is persisted before the payer is redirected, so the
// callback always finds a matching row.
type RequestChargeUseCase struct {
	txRepo    domainPayment.Repository
	adminRepo domainAdmin.Repository
	gateway   gateway.PaymentGateway
	minAmount int64
	recorder  *audit.Recorder
	logger    logger.Interface
}

func NewRequestChargeUseCase(
	txRepo domainPayment.Repository,
	adminRepo domainAdmin.Repository,
	gw gateway.PaymentGateway,
	minAmount int64,
	recorder *audit.Recorder,
	log logger.Interface,
) *RequestChargeUseCase {
	return &RequestChargeUseCase{
		txRepo:    txRepo,
		adminRepo: adminRepo,
		gateway:   gw,
		minAmount: minAmount,
		recorder:  recorder,
		logger:    log,
	}
}

func (uc *RequestChargeUseCase) Execute(ctx context.Context, adminID uint, request dto.ChargeRequest) (*dto.ChargeResponse, error) {
	if request.Amount < uc.minAmount {
		return nil, errors.NewValidationError(
			fmt.Sprintf("amount must be at least %d", uc.minAmount))
	}

	account, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, errors.NewInactiveError("account is deactivated")
	}

	description := request.Description
	if description == "" {
		description = fmt.Sprintf("balance top-up for %s", account.Username())
	}

	tx, err := domainPayment.NewTransaction(adminID, vo.NewMoney(request.Amount, ""), gatewayName, description)
	if err != nil {
		return nil, errors.NewValidationError("invalid charge data", err.Error())
	}

	result, err := uc.gateway.RequestPayment(ctx, request.Amount, description, account.Email())
	if err != nil {
		uc.logger.Errorw("gateway charge request failed", "admin_id", adminID, "error", err)
		return nil, err
	}

	if err := tx.AttachAuthority(result.Authority); err != nil {
		return nil, errors.NewInternalError("failed to record gateway authority", err.Error())
	}
	tx.SetRawRequest(map[string]any{
		"amount":      request.Amount,
		"description": description,
	})
	tx.SetRawResponse(result.Raw)

	if err := uc.txRepo.Create(ctx, tx); err != nil {
		uc.logger.Errorw("failed to persist pending transaction",
			"authority", result.Authority,
			"error", err)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	uc.recorder.RecordAdmin(adminID, auditlog.ActionAdminRechargeStart, map[string]any{
		"transaction_id": tx.ID(),
		"amount":         request.Amount,
		"authority":      result.Authority,
	})
	uc.logger.Infow("charge initiated",
		"transaction_id", tx.ID(),
		"admin_id", adminID,
		"amount", request.Amount)

	return &dto.ChargeResponse{
		TransactionID: tx.ID(),
		Authority:     result.Authority,
		PaymentURL:    result.PaymentURL,
	}, nil
}
