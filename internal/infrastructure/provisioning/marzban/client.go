// Package marzban is the HTTP client for the remote provisioning panel.
// Every admin-facing VPN account operation ends up here: the panel owns the
// real accounts while the local database only mirrors them.
package marzban

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/marzgate/marzgate/internal/shared/biztime"
	sharedConfig "github.com/marzgate/marzgate/internal/shared/config"
	apperrors "github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

const defaultTokenTTLMinutes = 55

type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     logger.Interface

	// Single-slot token cache. The panel does not report token expiry, so a
	// conservative TTL is assumed and a 401 forces one refresh-and-retry.
	tokenMu      sync.Mutex
	token        string
	tokenFetched time.Time
	tokenTTL     time.Duration
}

func NewClient(cfg *sharedConfig.MarzbanConfig, log logger.Interface) *Client {
	ttl := cfg.TokenTTLMinutes
	if ttl <= 0 {
		ttl = defaultTokenTTLMinutes
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		logger:   log,
		tokenTTL: time.Duration(ttl) * time.Minute,
	}
}

// GBToBytes converts a plan data limit to the byte count the panel expects.
// Zero means unlimited and maps to zero on the wire.
func GBToBytes(gb int) int64 {
	if gb <= 0 {
		return 0
	}
	return int64(gb) << 30
}

// ExpireAt converts a plan duration to the epoch timestamp the panel
// expects. Non-positive durations mean never-expires and map to zero.
func ExpireAt(durationDays int, now time.Time) int64 {
	if durationDays <= 0 {
		return 0
	}
	return now.Unix() + int64(durationDays)*86400
}

// RemoteUser is the panel's view of an account.
type RemoteUser struct {
	Username        string   `json:"username"`
	Status          string   `json:"status"`
	UsedTraffic     int64    `json:"used_traffic"`
	DataLimit       int64    `json:"data_limit"`
	Expire          int64    `json:"expire"`
	SubscriptionURL string   `json:"subscription_url"`
	Links           []string `json:"links"`
}

// CreateUserRequest describes the account to provision.
type CreateUserRequest struct {
	Username     string
	DataLimitGB  int
	DurationDays int
	Note         string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// getToken returns a cached token or fetches a fresh one. force discards
// the cached value first, used after a 401.
func (c *Client) getToken(ctx context.Context, force bool) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if !force && c.token != "" && biztime.NowUTC().Sub(c.tokenFetched) < c.tokenTTL {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/admin/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("provisioning panel unreachable", 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.NewUpstreamError("provisioning panel authentication failed", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", apperrors.NewUpstreamError("invalid token response from provisioning panel", resp.StatusCode, err.Error())
	}
	if tr.AccessToken == "" {
		return "", apperrors.NewUpstreamError("empty token from provisioning panel", resp.StatusCode)
	}

	c.token = tr.AccessToken
	c.tokenFetched = biztime.NowUTC()
	return c.token, nil
}

// do performs an authorized request and decodes the response into out when
// out is non-nil. A 401 triggers exactly one token refresh and retry.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	body, err := c.encodePayload(payload)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, body, false)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		resp, err = c.send(ctx, method, path, body, true)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.NewUpstreamError("invalid response from provisioning panel", resp.StatusCode, err.Error())
		}
	}
	return nil
}

func (c *Client) encodePayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}
	return b, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, forceToken bool) (*http.Response, error) {
	token, err := c.getToken(ctx, forceToken)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("provisioning panel unreachable", 0, err.Error())
	}
	return resp, nil
}

func (c *Client) remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := string(body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.NewNotFoundError("account not found on provisioning panel", detail)
	case http.StatusConflict:
		return apperrors.NewConflictError("account already exists on provisioning panel", detail)
	default:
		return apperrors.NewUpstreamError("provisioning panel request failed", resp.StatusCode, detail)
	}
}

// CreateUser provisions an account on the panel. The returned user carries
// the panel-sanitized username and the subscription URL.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*RemoteUser, error) {
	payload := map[string]any{
		"username": req.Username,
		"proxies": map[string]any{
			"vless": map[string]any{},
		},
		"data_limit":                GBToBytes(req.DataLimitGB),
		"data_limit_reset_strategy": "no_reset",
		"expire":                    ExpireAt(req.DurationDays, biztime.NowUTC()),
		"note":                      req.Note,
		"status":                    "active",
	}

	var user RemoteUser
	if err := c.do(ctx, http.MethodPost, "/api/user", payload, &user); err != nil {
		return nil, err
	}

	c.logger.Infow("remote account created", "username", user.Username)
	return &user, nil
}

// GetUser fetches live account state, including traffic usage.
func (c *Client) GetUser(ctx context.Context, username string) (*RemoteUser, error) {
	var user RemoteUser
	if err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ModifyUser updates the account's data limit and expiry on the panel.
func (c *Client) ModifyUser(ctx context.Context, username string, dataLimitGB, durationDays int) (*RemoteUser, error) {
	payload := map[string]any{
		"data_limit": GBToBytes(dataLimitGB),
		"expire":     ExpireAt(durationDays, biztime.NowUTC()),
	}

	var user RemoteUser
	if err := c.do(ctx, http.MethodPut, "/api/user/"+url.PathEscape(username), payload, &user); err != nil {
		return nil, err
	}

	c.logger.Infow("remote account modified", "username", username)
	return &user, nil
}

// ListUsers pages through the panel's accounts. Used for reconciliation
// against the local mirror.
func (c *Client) ListUsers(ctx context.Context, offset, limit int) ([]RemoteUser, int64, error) {
	var out struct {
		Users []RemoteUser `json:"users"`
		Total int64        `json:"total"`
	}

	path := fmt.Sprintf("/api/users?offset=%d&limit=%d", offset, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Users, out.Total, nil
}

// DeleteUser removes the account from the panel.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(username), nil, nil); err != nil {
		return err
	}
	c.logger.Infow("remote account deleted", "username", username)
	return nil
}

// ResetUserDataUsage zeroes the account's traffic counter on the panel.
func (c *Client) ResetUserDataUsage(ctx context.Context, username string) error {
	if err := c.do(ctx, http.MethodPost, "/api/user/"+url.PathEscape(username)+"/reset", nil, nil); err != nil {
		return err
	}
	c.logger.Infow("remote traffic reset", "username", username)
	return nil
}
