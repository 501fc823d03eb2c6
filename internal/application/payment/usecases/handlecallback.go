package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/payment/dto"
	"github.com/marzgate/marzgate/internal/application/payment/gateway"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainPayment "github.com/marzgate/marzgate/internal/domain/payment"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// Callback status values reported back to the frontend.
const (
	callbackStatusSuccess  = "success"
	callbackStatusFailed   = "failed"
	callbackStatusCanceled = "canceled"
	callbackStatusInvalid  = "invalid"
)

// HandleCallbackUseCase settles a gateway callback. Every path ends in a
// frontend redirect: unknown authorities, user cancellations, declined
// verifications and verified payments all produce an outcome instead of an
// HTTP error, because the payer's browser is the caller.
type HandleCallbackUseCase struct {
	txRepo      domainPayment.Repository
	gateway     gateway.PaymentGateway
	frontendURL string
	recorder    *audit.Recorder
	logger      logger.Interface
}

func NewHandleCallbackUseCase(
	txRepo domainPayment.Repository,
	gw gateway.PaymentGateway,
	frontendURL string,
	recorder *audit.Recorder,
	log logger.Interface,
) *HandleCallbackUseCase {
	return &HandleCallbackUseCase{
		txRepo:      txRepo,
		gateway:     gw,
		frontendURL: frontendURL,
		recorder:    recorder,
		logger:      log,
	}
}

// Execute processes the callback. gatewayStatus is the gateway's Status
// query parameter: "OK" means the payer completed the flow, anything else
// means cancellation.
func (uc *HandleCallbackUseCase) Execute(ctx context.Context, authority, gatewayStatus string) *dto.CallbackOutcome {
	if authority == "" {
		return uc.outcome(callbackStatusInvalid, "")
	}

	tx, err := uc.txRepo.GetPendingByAuthority(ctx, authority)
	if err != nil {
		// Unknown or already-settled authority. A replayed callback for a
		// settled payment lands here and must not credit again.
		uc.logger.Warnw("callback for unknown or settled authority",
			"authority", authority,
			"error", err)
		return uc.outcome(callbackStatusInvalid, "")
	}

	if gatewayStatus != "OK" {
		return uc.settleCanceled(ctx, tx)
	}

	result, err := uc.gateway.VerifyPayment(ctx, tx.Amount().Amount(), authority)
	if err != nil {
		// Verification could not be completed. The row must not stay
		// PENDING behind a processed callback, so it settles as FAILED; a
		// disputed charge is resolved against the gateway's records.
		uc.logger.Errorw("gateway verification failed",
			"authority", authority,
			"error", err)
		return uc.settleUnverifiable(ctx, tx, err)
	}

	if !result.Verified {
		return uc.settleFailed(ctx, tx, result)
	}

	return uc.settleVerified(ctx, tx, result)
}

func (uc *HandleCallbackUseCase) settleVerified(ctx context.Context, tx *domainPayment.Transaction, result *gateway.VerifyResult) *dto.CallbackOutcome {
	if err := tx.MarkSuccessful(result.RefID); err != nil {
		uc.logger.Errorw("illegal transaction transition", "transaction_id", tx.ID(), "error", err)
		return uc.outcome(callbackStatusInvalid, "")
	}
	tx.SetRawResponse(result.Raw)

	if err := uc.txRepo.MarkSuccessfulAndCredit(ctx, tx); err != nil {
		if errors.IsConflictError(err) {
			// A concurrent callback won the transition; the credit already
			// happened exactly once.
			uc.logger.Infow("callback lost settle race", "transaction_id", tx.ID())
			return uc.outcome(callbackStatusSuccess, result.RefID)
		}
		uc.logger.Errorw("failed to finalize verified payment",
			"transaction_id", tx.ID(),
			"error", err)
		return uc.outcome(callbackStatusFailed, "")
	}

	uc.recorder.RecordAdmin(tx.AdminID(), auditlog.ActionAdminRechargeOK, map[string]any{
		"transaction_id": tx.ID(),
		"amount":         tx.Amount().Amount(),
		"ref_id":         result.RefID,
	})
	uc.logger.Infow("payment settled and balance credited",
		"transaction_id", tx.ID(),
		"admin_id", tx.AdminID(),
		"amount", tx.Amount().Amount())

	return uc.outcome(callbackStatusSuccess, result.RefID)
}

func (uc *HandleCallbackUseCase) settleFailed(ctx context.Context, tx *domainPayment.Transaction, result *gateway.VerifyResult) *dto.CallbackOutcome {
	reason := fmt.Sprintf("gateway verification declined with code %d", result.Code)
	if err := tx.MarkFailed(reason); err == nil {
		tx.SetRawResponse(result.Raw)
		if err := uc.txRepo.Update(ctx, tx); err != nil {
			uc.logger.Errorw("failed to persist failed transaction", "transaction_id", tx.ID(), "error", err)
		}
	}

	uc.recorder.RecordAdmin(tx.AdminID(), auditlog.ActionAdminRechargeFailed, map[string]any{
		"transaction_id": tx.ID(),
		"code":           result.Code,
	})
	uc.logger.Warnw("payment verification declined",
		"transaction_id", tx.ID(),
		"code", result.Code)

	return uc.outcome(callbackStatusFailed, "")
}

// settleUnverifiable finalizes a transaction whose verification call errored
// out entirely.
func (uc *HandleCallbackUseCase) settleUnverifiable(ctx context.Context, tx *domainPayment.Transaction, cause error) *dto.CallbackOutcome {
	if err := tx.MarkFailed(fmt.Sprintf("verification could not be completed: %v", cause)); err == nil {
		if err := uc.txRepo.Update(ctx, tx); err != nil {
			uc.logger.Errorw("failed to persist failed transaction", "transaction_id", tx.ID(), "error", err)
		}
	}

	uc.recorder.RecordAdmin(tx.AdminID(), auditlog.ActionAdminRechargeFailed, map[string]any{
		"transaction_id": tx.ID(),
		"error":          cause.Error(),
	})

	return uc.outcome(callbackStatusFailed, "")
}

func (uc *HandleCallbackUseCase) settleCanceled(ctx context.Context, tx *domainPayment.Transaction) *dto.CallbackOutcome {
	if err := tx.MarkCanceled(); err == nil {
		if err := uc.txRepo.Update(ctx, tx); err != nil {
			uc.logger.Errorw("failed to persist canceled transaction", "transaction_id", tx.ID(), "error", err)
		}
	}

	uc.logger.Infow("payment canceled by payer", "transaction_id", tx.ID())
	return uc.outcome(callbackStatusCanceled, "")
}

func (uc *HandleCallbackUseCase) outcome(status, refID string) *dto.CallbackOutcome {
	redirect := fmt.Sprintf("%s/payment/result?status=%s", uc.frontendURL, status)
	if refID != "" {
		redirect += "&ref_id=" + refID
	}
	return &dto.CallbackOutcome{
		Success:     status == callbackStatusSuccess,
		Status:      status,
		RefID:       refID,
		RedirectURL: redirect,
	}
}
