package payment

import "context"

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uint) (*Transaction, error)
	// GetPendingByAuthority returns the PENDING transaction for the given
	// gateway authority token, or a not-found error.
	GetPendingByAuthority(ctx context.Context, authority string) (*Transaction, error)
	// MarkSuccessfulAndCredit atomically transitions the transaction
	// PENDING -> SUCCESSFUL (conditional on the row still being PENDING)
	// and credits the owning admin's balance by the transaction amount.
	// Both writes happen in one database transaction; at most one caller
	// can win the transition for a given authority.
	MarkSuccessfulAndCredit(ctx context.Context, tx *Transaction) error
	ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*Transaction, int64, error)
}
