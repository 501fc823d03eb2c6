package marzban

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/vpnuser/provisioning"
)

// Adapter exposes the panel client through the application-layer port.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) CreateUser(ctx context.Context, req provisioning.ProvisionRequest) (*provisioning.RemoteAccount, error) {
	user, err := a.client.CreateUser(ctx, CreateUserRequest{
		Username:     req.Username,
		DataLimitGB:  req.DataLimitGB,
		DurationDays: req.DurationDays,
		Note:         req.Note,
	})
	if err != nil {
		return nil, err
	}
	return toRemoteAccount(user), nil
}

func (a *Adapter) GetUser(ctx context.Context, username string) (*provisioning.RemoteAccount, error) {
	user, err := a.client.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return toRemoteAccount(user), nil
}

func (a *Adapter) ModifyUser(ctx context.Context, username string, dataLimitGB, durationDays int) (*provisioning.RemoteAccount, error) {
	user, err := a.client.ModifyUser(ctx, username, dataLimitGB, durationDays)
	if err != nil {
		return nil, err
	}
	return toRemoteAccount(user), nil
}

func (a *Adapter) ListUsers(ctx context.Context, offset, limit int) ([]provisioning.RemoteAccount, int64, error) {
	users, total, err := a.client.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]provisioning.RemoteAccount, 0, len(users))
	for i := range users {
		out = append(out, *toRemoteAccount(&users[i]))
	}
	return out, total, nil
}

func (a *Adapter) DeleteUser(ctx context.Context, username string) error {
	return a.client.DeleteUser(ctx, username)
}

func (a *Adapter) ResetUserDataUsage(ctx context.Context, username string) error {
	return a.client.ResetUserDataUsage(ctx, username)
}

func toRemoteAccount(u *RemoteUser) *provisioning.RemoteAccount {
	return &provisioning.RemoteAccount{
		Username:        u.Username,
		Status:          u.Status,
		UsedTraffic:     u.UsedTraffic,
		DataLimit:       u.DataLimit,
		Expire:          u.Expire,
		SubscriptionURL: u.SubscriptionURL,
		Links:           u.Links,
	}
}
