package dto

import "time"

type CreateVpnUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100,username"`
	PlanID   uint   `json:"plan_id" binding:"required"`
	Notes    string `json:"notes,omitempty" binding:"max=500"`
}

type VpnUserResponse struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	PlanID           uint       `json:"plan_id"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	SubscriptionLink *string    `json:"subscription_link,omitempty"`
	QRCodeLink       *string    `json:"qr_code_link,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// VpnUserDetailResponse extends the listing row with live panel state. When
// the panel is unreachable the remote block is absent and RemoteAvailable
// is false.
type VpnUserDetailResponse struct {
	VpnUserResponse
	RemoteAvailable bool              `json:"remote_available"`
	Remote          *RemoteUsageBlock `json:"remote,omitempty"`
}

type RemoteUsageBlock struct {
	Status      string `json:"status"`
	UsedTraffic int64  `json:"used_traffic"`
	DataLimit   int64  `json:"data_limit"`
	Expire      int64  `json:"expire"`
}

type ChangeVpnUserPlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// PanelAccountResponse is one remote account in the reconciliation listing.
// Tracked reports whether the local ledger knows the account; untracked rows
// point at drift between the panel and the database.
type PanelAccountResponse struct {
	Username    string `json:"username"`
	Status      string `json:"status"`
	UsedTraffic int64  `json:"used_traffic"`
	DataLimit   int64  `json:"data_limit"`
	Expire      int64  `json:"expire"`
	Tracked     bool   `json:"tracked"`
	AdminID     uint   `json:"admin_id,omitempty"`
}
