package dto

import "time"

type ChargeRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description,omitempty" binding:"max=255"`
}

type ChargeResponse struct {
	TransactionID uint   `json:"transaction_id"`
	Authority     string `json:"authority"`
	PaymentURL    string `json:"payment_url"`
}

type TransactionResponse struct {
	ID          uint       `json:"id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Gateway     string     `json:"gateway"`
	Status      string     `json:"status"`
	Authority   *string    `json:"authority,omitempty"`
	RefID       *string    `json:"ref_id,omitempty"`
	Description string     `json:"description,omitempty"`
	InitiatedAt time.Time  `json:"initiated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// CallbackOutcome tells the HTTP layer where to send the payer's browser.
type CallbackOutcome struct {
	Success     bool   `json:"success"`
	Status      string `json:"status"`
	RefID       string `json:"ref_id,omitempty"`
	RedirectURL string `json:"redirect_url"`
}
