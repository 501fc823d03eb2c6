package vpnuser

import "context"

type Repository interface {
	Create(ctx context.Context, u *VpnUser) error
	Update(ctx context.Context, u *VpnUser) error
	GetByID(ctx context.Context, id uint) (*VpnUser, error)
	GetByUsername(ctx context.Context, username string) (*VpnUser, error)
	// GetByUsernameForAdmin scopes the lookup to rows owned by the admin.
	GetByUsernameForAdmin(ctx context.Context, username string, adminID uint) (*VpnUser, error)
	ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*VpnUser, int64, error)
	CountByPlanID(ctx context.Context, planID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}
