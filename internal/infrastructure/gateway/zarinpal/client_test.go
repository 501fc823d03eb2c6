package zarinpal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/marzgate/marzgate/internal/shared/config"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&sharedConfig.ZarinpalConfig{
		MerchantID:     "merchant-123",
		CallbackURL:    "https://panel.example.com/api/v1/payment/callback",
		BaseURL:        baseURL,
		StartPayURL:    "https://gateway.example.com/pg/StartPay",
		TimeoutSeconds: 5,
	}, logger.NewLogger())
}

func TestClient_RequestPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment/request.json", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "merchant-123", payload["merchant_id"])
		assert.Equal(t, float64(250000), payload["amount"])
		assert.NotEmpty(t, payload["callback_url"])
		meta, ok := payload["metadata"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "reseller@example.com", meta["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"code":      100,
				"authority": "A0000012345",
				"message":   "Success",
			},
			"errors": []any{},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.RequestPayment(context.Background(), 250000, "balance top-up", "reseller@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A0000012345", result.Authority)
	assert.Equal(t, "https://gateway.example.com/pg/StartPay/A0000012345", result.PaymentURL)
	assert.NotNil(t, result.Raw)
}

func TestClient_RequestPayment_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []any{},
			"errors": map[string]any{
				"code":    -9,
				"message": "The input params invalid",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.RequestPayment(context.Background(), 100, "too small", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestClient_VerifyPayment_Verified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment/verify.json", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "A0000012345", payload["authority"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"code":   100,
				"ref_id": 9001,
			},
			"errors": []any{},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.VerifyPayment(context.Background(), 250000, "A0000012345")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.False(t, result.AlreadyVerified)
	assert.Equal(t, 100, result.Code)
	assert.Equal(t, "9001", result.RefID)
}

func TestClient_VerifyPayment_AlreadyVerified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"code":   101,
				"ref_id": "9001",
			},
			"errors": []any{},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.VerifyPayment(context.Background(), 250000, "A0000012345")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.True(t, result.AlreadyVerified)
	assert.Equal(t, "9001", result.RefID)
}

func TestClient_VerifyPayment_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"code":    -53,
				"message": "Session is not valid",
			},
			"errors": []any{},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.VerifyPayment(context.Background(), 250000, "A0000012345")
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Equal(t, -53, result.Code)
}

func TestClient_VerifyPayment_DeclinedViaErrorsEnvelope(t *testing.T) {
	// Declines usually arrive as an empty data array with a populated
	// errors object. They are a payment outcome, not a transport failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []any{},
			"errors": map[string]any{
				"code":    -51,
				"message": "Session is in failed status",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.VerifyPayment(context.Background(), 250000, "A0000012345")
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.Equal(t, -51, result.Code)
	assert.NotNil(t, result.Raw)
}
