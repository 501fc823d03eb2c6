package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/payment/dto"
	domainPayment "github.com/marzgate/marzgate/internal/domain/payment"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// ListTransactionsUseCase lists the calling admin's own payment history,
// newest first.
type ListTransactionsUseCase struct {
	txRepo domainPayment.Repository
	logger logger.Interface
}

func NewListTransactionsUseCase(txRepo domainPayment.Repository, log logger.Interface) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		txRepo: txRepo,
		logger: log,
	}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, adminID uint, pagination utils.Pagination) ([]*dto.TransactionResponse, int64, error) {
	txs, total, err := uc.txRepo.ListByAdminID(ctx, adminID, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list transactions", "admin_id", adminID, "error", err)
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]*dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, ToTransactionResponse(tx))
	}
	return responses, total, nil
}

// ToTransactionResponse maps the entity to its API representation.
func ToTransactionResponse(tx *domainPayment.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          tx.ID(),
		Amount:      tx.Amount().Amount(),
		Currency:    tx.Amount().Currency(),
		Gateway:     tx.Gateway(),
		Status:      string(tx.Status()),
		Authority:   tx.Authority(),
		RefID:       tx.RefID(),
		Description: tx.Description(),
		InitiatedAt: tx.InitiatedAt(),
		ConfirmedAt: tx.ConfirmedAt(),
	}
}
