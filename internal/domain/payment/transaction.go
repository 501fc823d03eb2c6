// Package payment models prepaid balance top-ups through the external
// payment gateway. A Transaction tracks one payment attempt from PENDING
// to exactly one terminal state; only the SUCCESSFUL transition may credit
// the owning admin's balance.
package payment

import (
	"fmt"
	"time"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/shared/biztime"
)

type Transaction struct {
	id      uint
	adminID uint
	amount  vo.Money
	gateway string
	status  vo.TransactionStatus

	// authority is the opaque handle the gateway assigns to this attempt.
	// It correlates the browser callback with the pending row.
	authority *string
	refID     *string

	description string

	initiatedAt time.Time
	confirmedAt *time.Time

	rawRequest  map[string]interface{}
	rawResponse map[string]interface{}

	createdAt time.Time
	updatedAt time.Time
}

// NewTransaction creates a PENDING transaction for a charge request.
func NewTransaction(adminID uint, amount vo.Money, gateway, description string) (*Transaction, error) {
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if gateway == "" {
		return nil, fmt.Errorf("gateway is required")
	}

	now := biztime.NowUTC()
	return &Transaction{
		adminID:     adminID,
		amount:      amount,
		gateway:     gateway,
		status:      vo.StatusPending,
		description: description,
		initiatedAt: now,
		rawRequest:  make(map[string]interface{}),
		rawResponse: make(map[string]interface{}),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// AttachAuthority records the gateway authority token after a successful
// payment request. Must be called before the transaction is persisted so the
// callback handler can always find the matching row.
func (t *Transaction) AttachAuthority(authority string) error {
	if authority == "" {
		return fmt.Errorf("authority is required")
	}
	if t.status != vo.StatusPending {
		return fmt.Errorf("cannot attach authority with status %s", t.status)
	}
	t.authority = &authority
	t.updatedAt = biztime.NowUTC()
	return nil
}

// MarkSuccessful transitions PENDING -> SUCCESSFUL and records the gateway
// reference id and confirmation time. Idempotent when already SUCCESSFUL
// with the same reference.
func (t *Transaction) MarkSuccessful(refID string) error {
	if t.status == vo.StatusSuccessful {
		return nil
	}
	if t.status != vo.StatusPending {
		return fmt.Errorf("cannot mark transaction successful with terminal status %s", t.status)
	}

	now := biztime.NowUTC()
	t.status = vo.StatusSuccessful
	t.refID = &refID
	t.confirmedAt = &now
	t.updatedAt = now
	return nil
}

// MarkFailed transitions to FAILED. Already-terminal transactions are left
// untouched except that failing a FAILED transaction is a no-op.
func (t *Transaction) MarkFailed(reason string) error {
	if t.status == vo.StatusFailed {
		return nil
	}
	if t.status.IsFinal() {
		return fmt.Errorf("cannot mark transaction failed with terminal status %s", t.status)
	}

	t.status = vo.StatusFailed
	if reason != "" {
		t.rawResponse["failure_reason"] = reason
	}
	t.updatedAt = biztime.NowUTC()
	return nil
}

// MarkCanceled transitions to CANCELED (user aborted at the gateway).
func (t *Transaction) MarkCanceled() error {
	if t.status == vo.StatusCanceled {
		return nil
	}
	if t.status.IsFinal() {
		return fmt.Errorf("cannot cancel transaction with terminal status %s", t.status)
	}

	t.status = vo.StatusCanceled
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Transaction) SetRawRequest(payload map[string]interface{}) {
	t.rawRequest = payload
	t.updatedAt = biztime.NowUTC()
}

func (t *Transaction) SetRawResponse(payload map[string]interface{}) {
	t.rawResponse = payload
	t.updatedAt = biztime.NowUTC()
}

// SetID writes back the auto-generated ID after persistence.
func (t *Transaction) SetID(id uint) {
	t.id = id
}

func (t *Transaction) ID() uint                        { return t.id }
func (t *Transaction) AdminID() uint                   { return t.adminID }
func (t *Transaction) Amount() vo.Money                { return t.amount }
func (t *Transaction) Gateway() string                 { return t.gateway }
func (t *Transaction) Status() vo.TransactionStatus    { return t.status }
func (t *Transaction) Authority() *string              { return t.authority }
func (t *Transaction) RefID() *string                  { return t.refID }
func (t *Transaction) Description() string             { return t.description }
func (t *Transaction) InitiatedAt() time.Time          { return t.initiatedAt }
func (t *Transaction) ConfirmedAt() *time.Time         { return t.confirmedAt }
func (t *Transaction) RawRequest() map[string]interface{}  { return t.rawRequest }
func (t *Transaction) RawResponse() map[string]interface{} { return t.rawResponse }
func (t *Transaction) CreatedAt() time.Time            { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time            { return t.updatedAt }

// ReconstructTransaction rebuilds a Transaction from persistence.
func ReconstructTransaction(
	id, adminID uint,
	amount vo.Money,
	gateway string,
	status vo.TransactionStatus,
	authority, refID *string,
	description string,
	initiatedAt time.Time,
	confirmedAt *time.Time,
	rawRequest, rawResponse map[string]interface{},
	createdAt, updatedAt time.Time,
) *Transaction {
	if rawRequest == nil {
		rawRequest = make(map[string]interface{})
	}
	if rawResponse == nil {
		rawResponse = make(map[string]interface{})
	}
	return &Transaction{
		id:          id,
		adminID:     adminID,
		amount:      amount,
		gateway:     gateway,
		status:      status,
		authority:   authority,
		refID:       refID,
		description: description,
		initiatedAt: initiatedAt,
		confirmedAt: confirmedAt,
		rawRequest:  rawRequest,
		rawResponse: rawResponse,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}
