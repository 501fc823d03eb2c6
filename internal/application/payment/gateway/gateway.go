// Package gateway defines the payment gateway port used by the balance
// top-up use cases. The concrete Zarinpal client adapts to this interface.
package gateway

import "context"

// ChargeResult is the outcome of registering a charge with the gateway.
type ChargeResult struct {
	Authority  string
	PaymentURL string
	Raw        map[string]any
}

// VerifyResult is the verified outcome of a browser callback. Verified is
// true for both a first verify and an idempotent already-verified replay.
type VerifyResult struct {
	Verified        bool
	AlreadyVerified bool
	Code            int
	RefID           string
	Raw             map[string]any
}

type PaymentGateway interface {
	// RequestPayment registers a charge. email is the payer's contact for
	// the gateway receipt and may be empty.
	RequestPayment(ctx context.Context, amount int64, description, email string) (*ChargeResult, error)
	VerifyPayment(ctx context.Context, amount int64, authority string) (*VerifyResult, error)
}
