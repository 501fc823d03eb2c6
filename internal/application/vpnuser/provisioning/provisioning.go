// Package provisioning defines the port the VPN user use cases talk to.
// The concrete panel client lives in infrastructure and adapts to this
// interface.
package provisioning

import "context"

// ProvisionRequest describes the account to create on the panel.
type ProvisionRequest struct {
	Username     string
	DataLimitGB  int
	DurationDays int
	Note         string
}

// RemoteAccount is the panel's view of an account. Byte counters are raw
// panel values; zero DataLimit means unlimited.
type RemoteAccount struct {
	Username        string
	Status          string
	UsedTraffic     int64
	DataLimit       int64
	Expire          int64
	SubscriptionURL string
	Links           []string
}

type Client interface {
	CreateUser(ctx context.Context, req ProvisionRequest) (*RemoteAccount, error)
	GetUser(ctx context.Context, username string) (*RemoteAccount, error)
	// ModifyUser applies new plan limits to an existing account.
	ModifyUser(ctx context.Context, username string, dataLimitGB, durationDays int) (*RemoteAccount, error)
	// ListUsers pages through all panel accounts, for reconciliation against
	// the local ledger.
	ListUsers(ctx context.Context, offset, limit int) ([]RemoteAccount, int64, error)
	DeleteUser(ctx context.Context, username string) error
	ResetUserDataUsage(ctx context.Context, username string) error
}
