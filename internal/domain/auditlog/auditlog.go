// Package auditlog records administrative actions for later review. Entries
// are append-only and carry exactly one actor: an admin or a super admin.
package auditlog

import (
	"fmt"
	"time"

	"github.com/marzgate/marzgate/internal/shared/biztime"
)

// Action names follow an ACTOR_VERB_OBJECT convention.
const (
	ActionAdminLoginSuccess      = "ADMIN_LOGIN_SUCCESS"
	ActionAdminLoginFailed       = "ADMIN_LOGIN_FAILED"
	ActionSuperAdminLoginSuccess = "SUPER_ADMIN_LOGIN_SUCCESS"
	ActionSuperAdminLoginFailed  = "SUPER_ADMIN_LOGIN_FAILED"

	ActionSuperAdminCreateAdmin = "SUPER_ADMIN_CREATE_ADMIN"
	ActionSuperAdminUpdateAdmin = "SUPER_ADMIN_UPDATE_ADMIN"
	ActionSuperAdminDeleteAdmin = "SUPER_ADMIN_DELETE_ADMIN"
	ActionSuperAdminCreditAdmin = "SUPER_ADMIN_CREDIT_ADMIN"

	ActionSuperAdminCreatePlan = "SUPER_ADMIN_CREATE_PLAN"
	ActionSuperAdminUpdatePlan = "SUPER_ADMIN_UPDATE_PLAN"
	ActionSuperAdminDeletePlan = "SUPER_ADMIN_DELETE_PLAN"

	ActionAdminCreateVpnUser     = "ADMIN_CREATE_VPN_USER"
	ActionAdminDeleteVpnUser     = "ADMIN_DELETE_VPN_USER"
	ActionAdminChangeVpnUserPlan = "ADMIN_CHANGE_VPN_USER_PLAN"
	ActionAdminResetVpnUser      = "ADMIN_RESET_VPN_USER_TRAFFIC"
	ActionAdminRechargeStart     = "ADMIN_RECHARGE_INITIATED"
	ActionAdminRechargeOK        = "ADMIN_RECHARGE_SUCCESS"
	ActionAdminRechargeFailed    = "ADMIN_RECHARGE_FAILED"
)

type Entry struct {
	id uint

	// Exactly one of adminID / superAdminID is set.
	adminID      *uint
	superAdminID *uint

	action  string
	details map[string]any

	createdAt time.Time
}

// NewAdminEntry records an action performed by an admin.
func NewAdminEntry(adminID uint, action string, details map[string]any) (*Entry, error) {
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	return newEntry(&adminID, nil, action, details)
}

// NewSuperAdminEntry records an action performed by a super admin.
func NewSuperAdminEntry(superAdminID uint, action string, details map[string]any) (*Entry, error) {
	if superAdminID == 0 {
		return nil, fmt.Errorf("super admin ID is required")
	}
	return newEntry(nil, &superAdminID, action, details)
}

func newEntry(adminID, superAdminID *uint, action string, details map[string]any) (*Entry, error) {
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	return &Entry{
		adminID:      adminID,
		superAdminID: superAdminID,
		action:       action,
		details:      details,
		createdAt:    biztime.NowUTC(),
	}, nil
}

func (e *Entry) SetID(id uint) { e.id = id }

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) AdminID() *uint       { return e.adminID }
func (e *Entry) SuperAdminID() *uint  { return e.superAdminID }
func (e *Entry) Action() string       { return e.action }
func (e *Entry) Details() map[string]any { return e.details }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// ReconstructEntry rebuilds an Entry from persistence.
func ReconstructEntry(id uint, adminID, superAdminID *uint, action string, details map[string]any, createdAt time.Time) *Entry {
	return &Entry{
		id:           id,
		adminID:      adminID,
		superAdminID: superAdminID,
		action:       action,
		details:      details,
		createdAt:    createdAt,
	}
}
