// Package zarinpal is the HTTP client for the payment gateway. A charge is
// requested with RequestPayment, the browser is sent to the returned pay
// URL, and the callback handler verifies the outcome with VerifyPayment.
package zarinpal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedConfig "github.com/marzgate/marzgate/internal/shared/config"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

const (
	// CodeVerified is returned by the gateway on first successful verify.
	CodeVerified = 100
	// CodeAlreadyVerified means the authority was verified before. Treated
	// as success so a replayed callback stays idempotent.
	CodeAlreadyVerified = 101
)

type Client struct {
	merchantID  string
	callbackURL string
	baseURL     string
	startPayURL string
	httpClient  *http.Client
	logger      logger.Interface
}

func NewClient(cfg *sharedConfig.ZarinpalConfig, log logger.Interface) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		merchantID:  cfg.MerchantID,
		callbackURL: cfg.CallbackURL,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		startPayURL: strings.TrimRight(cfg.StartPayURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		logger: log,
	}
}

// RequestResult is the outcome of a payment request.
type RequestResult struct {
	Authority  string
	PaymentURL string
	Raw        map[string]any
}

// VerifyResult is the outcome of a verification call. Verified is true for
// both a first verify and an already-verified replay.
type VerifyResult struct {
	Verified        bool
	AlreadyVerified bool
	Code            int
	RefID           string
	Raw             map[string]any
}

type gatewayEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type requestData struct {
	Code      int    `json:"code"`
	Authority string `json:"authority"`
	Message   string `json:"message"`
}

type verifyData struct {
	Code    int             `json:"code"`
	RefID   json.RawMessage `json:"ref_id"`
	Message string          `json:"message"`
}

// gatewayError is the body of the errors object the gateway sends together
// with an empty data array.
type gatewayError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RequestPayment registers a charge with the gateway and returns the
// authority token plus the redirect URL for the payer's browser. The admin's
// email rides along as gateway metadata so the receipt reaches the payer.
func (c *Client) RequestPayment(ctx context.Context, amount int64, description, email string) (*RequestResult, error) {
	payload := map[string]any{
		"merchant_id":  c.merchantID,
		"amount":       amount,
		"callback_url": c.callbackURL,
		"description":  description,
	}
	if email != "" {
		payload["metadata"] = map[string]any{"email": email}
	}

	raw, data, errs, err := c.post(ctx, "/payment/request.json", payload)
	if err != nil {
		return nil, err
	}
	if emptyData(data) {
		ge := decodeGatewayError(errs)
		return nil, apperrors.NewUpstreamError("payment gateway rejected the charge request", ge.Code, ge.Message)
	}

	var rd requestData
	if err := json.Unmarshal(data, &rd); err != nil {
		return nil, apperrors.NewUpstreamError("invalid response from payment gateway", 0, err.Error())
	}

	if rd.Code != CodeVerified || rd.Authority == "" {
		return nil, apperrors.NewUpstreamError("payment gateway rejected the charge request", rd.Code, rd.Message)
	}

	c.logger.Infow("payment requested", "authority", rd.Authority, "amount", amount)

	return &RequestResult{
		Authority:  rd.Authority,
		PaymentURL: c.startPayURL + "/" + rd.Authority,
		Raw:        raw,
	}, nil
}

// VerifyPayment confirms a callback with the gateway. Declines come back as
// a non-verified result, not an error, whether the gateway reports them
// through a non-100 data.code or through the errors envelope; errors are
// reserved for transport and protocol failures.
func (c *Client) VerifyPayment(ctx context.Context, amount int64, authority string) (*VerifyResult, error) {
	payload := map[string]any{
		"merchant_id": c.merchantID,
		"amount":      amount,
		"authority":   authority,
	}

	raw, data, errs, err := c.post(ctx, "/payment/verify.json", payload)
	if err != nil {
		return nil, err
	}
	if emptyData(data) {
		ge := decodeGatewayError(errs)
		c.logger.Warnw("payment verification declined by gateway",
			"authority", authority,
			"code", ge.Code,
			"message", ge.Message,
		)
		return &VerifyResult{Code: ge.Code, Raw: raw}, nil
	}

	var vd verifyData
	if err := json.Unmarshal(data, &vd); err != nil {
		return nil, apperrors.NewUpstreamError("invalid response from payment gateway", 0, err.Error())
	}

	result := &VerifyResult{
		Verified:        vd.Code == CodeVerified || vd.Code == CodeAlreadyVerified,
		AlreadyVerified: vd.Code == CodeAlreadyVerified,
		Code:            vd.Code,
		RefID:           decodeRefID(vd.RefID),
		Raw:             raw,
	}

	c.logger.Infow("payment verification completed",
		"authority", authority,
		"code", vd.Code,
		"verified", result.Verified,
	)

	return result, nil
}

// post sends a JSON request and returns the envelope's data and errors parts
// plus the full raw body for audit storage. Whether a populated errors object
// means "fail the call" or "decline the payment" depends on the endpoint, so
// that decision is left to the caller.
func (c *Client) post(ctx context.Context, path string, payload map[string]any) (map[string]any, json.RawMessage, json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, nil, apperrors.NewUpstreamError("payment gateway unreachable", 0, err.Error())
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, nil, apperrors.NewUpstreamError("failed to read gateway response", resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, nil, apperrors.NewUpstreamError("payment gateway request failed", resp.StatusCode, string(rawBody))
	}

	var envelope gatewayEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, nil, nil, apperrors.NewUpstreamError("invalid response from payment gateway", resp.StatusCode, err.Error())
	}

	var raw map[string]any
	if err := json.Unmarshal(rawBody, &raw); err != nil {
		raw = nil
	}

	return raw, envelope.Data, envelope.Errors, nil
}

// emptyData reports whether the envelope carried no data part. The gateway
// sends an empty array there when it answers through the errors object.
func emptyData(data json.RawMessage) bool {
	s := string(data)
	return len(data) == 0 || s == "[]" || s == "null"
}

func decodeGatewayError(errs json.RawMessage) gatewayError {
	var ge gatewayError
	if len(errs) > 0 {
		_ = json.Unmarshal(errs, &ge)
	}
	if ge.Message == "" {
		ge.Message = string(errs)
	}
	return ge
}

// decodeRefID tolerates both numeric and string ref ids on the wire.
func decodeRefID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return fmt.Sprintf("%d", asNumber)
	}
	return string(raw)
}
