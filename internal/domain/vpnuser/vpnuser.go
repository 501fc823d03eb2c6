// Package vpnuser models end-user VPN accounts mirrored between the local
// ledger and the remote provisioning panel. A local row exists only after
// the remote account was created successfully; the row's existence is the
// authoritative claim that a remote account should exist.
package vpnuser

import (
	"fmt"
	"strings"
	"time"

	"github.com/marzgate/marzgate/internal/shared/biztime"
)

type VpnUser struct {
	id uint

	// username is the remote-confirmed account name. The provisioning panel
	// may sanitize the requested name, so the confirmed value is stored.
	username string

	adminID uint
	planID  uint

	// expiresAt is nil when the plan carries no expiry.
	expiresAt *time.Time
	isActive  bool

	remoteUserID     *string
	subscriptionLink *string
	qrCodeLink       *string

	notes string

	createdAt time.Time
	updatedAt time.Time
}

// NewVpnUser creates a ledger row for a remotely provisioned account.
func NewVpnUser(username string, adminID, planID uint, expiresAt *time.Time, notes string) (*VpnUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := biztime.NowUTC()
	return &VpnUser{
		username:  username,
		adminID:   adminID,
		planID:    planID,
		expiresAt: expiresAt,
		isActive:  true,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ExpiryFor derives the local expiry from a plan duration. Non-positive
// durations mean no expiry.
func ExpiryFor(durationDays int, now time.Time) *time.Time {
	if durationDays <= 0 {
		return nil
	}
	t := now.Add(time.Duration(durationDays) * 24 * time.Hour)
	return &t
}

// SetRemoteInfo records identifiers reported by the provisioning panel.
func (u *VpnUser) SetRemoteInfo(remoteUserID, subscriptionLink, qrCodeLink string) {
	if remoteUserID != "" {
		u.remoteUserID = &remoteUserID
	}
	if subscriptionLink != "" {
		u.subscriptionLink = &subscriptionLink
	}
	if qrCodeLink != "" {
		u.qrCodeLink = &qrCodeLink
	}
	u.updatedAt = biztime.NowUTC()
}

// ChangePlan moves the account to another plan and resets the local expiry
// derived from it. Callers update the remote account first; the local row
// only changes after the panel accepted the new limits.
func (u *VpnUser) ChangePlan(planID uint, expiresAt *time.Time) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	u.planID = planID
	u.expiresAt = expiresAt
	u.updatedAt = biztime.NowUTC()
	return nil
}

// Touch bumps the updated timestamp, used after remote-only operations such
// as a traffic reset.
func (u *VpnUser) Touch() {
	u.updatedAt = biztime.NowUTC()
}

func (u *VpnUser) Deactivate() {
	u.isActive = false
	u.updatedAt = biztime.NowUTC()
}

func (u *VpnUser) SetID(id uint) {
	u.id = id
}

func (u *VpnUser) ID() uint                  { return u.id }
func (u *VpnUser) Username() string          { return u.username }
func (u *VpnUser) AdminID() uint             { return u.adminID }
func (u *VpnUser) PlanID() uint              { return u.planID }
func (u *VpnUser) ExpiresAt() *time.Time     { return u.expiresAt }
func (u *VpnUser) IsActive() bool            { return u.isActive }
func (u *VpnUser) RemoteUserID() *string     { return u.remoteUserID }
func (u *VpnUser) SubscriptionLink() *string { return u.subscriptionLink }
func (u *VpnUser) QRCodeLink() *string       { return u.qrCodeLink }
func (u *VpnUser) Notes() string             { return u.notes }
func (u *VpnUser) CreatedAt() time.Time      { return u.createdAt }
func (u *VpnUser) UpdatedAt() time.Time      { return u.updatedAt }

// ReconstructVpnUser rebuilds a VpnUser from persistence.
func ReconstructVpnUser(
	id uint,
	username string,
	adminID, planID uint,
	expiresAt *time.Time,
	isActive bool,
	remoteUserID, subscriptionLink, qrCodeLink *string,
	notes string,
	createdAt, updatedAt time.Time,
) *VpnUser {
	return &VpnUser{
		id:               id,
		username:         username,
		adminID:          adminID,
		planID:           planID,
		expiresAt:        expiresAt,
		isActive:         isActive,
		remoteUserID:     remoteUserID,
		subscriptionLink: subscriptionLink,
		qrCodeLink:       qrCodeLink,
		notes:            notes,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}
