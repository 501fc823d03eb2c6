package zarinpal

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/payment/gateway"
)

// Adapter exposes the gateway client through the application-layer port.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) RequestPayment(ctx context.Context, amount int64, description, email string) (*gateway.ChargeResult, error) {
	result, err := a.client.RequestPayment(ctx, amount, description, email)
	if err != nil {
		return nil, err
	}
	return &gateway.ChargeResult{
		Authority:  result.Authority,
		PaymentURL: result.PaymentURL,
		Raw:        result.Raw,
	}, nil
}

func (a *Adapter) VerifyPayment(ctx context.Context, amount int64, authority string) (*gateway.VerifyResult, error) {
	result, err := a.client.VerifyPayment(ctx, amount, authority)
	if err != nil {
		return nil, err
	}
	return &gateway.VerifyResult{
		Verified:        result.Verified,
		AlreadyVerified: result.AlreadyVerified,
		Code:            result.Code,
		RefID:           result.RefID,
		Raw:             result.Raw,
	}, nil
}
