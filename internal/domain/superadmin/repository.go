package superadmin

import "context"

type Repository interface {
	Create(ctx context.Context, s *SuperAdmin) error
	GetByID(ctx context.Context, id uint) (*SuperAdmin, error)
	GetByUsername(ctx context.Context, username string) (*SuperAdmin, error)
}
