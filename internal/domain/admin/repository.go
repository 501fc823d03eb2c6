package admin

import "context"

// Patch carries a partial update. Nil fields are left untouched; the
// repository layer never applies anything outside this allow-list.
type Patch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil && p.IsActive == nil
}

type Repository interface {
	Create(ctx context.Context, a *Admin) error
	Update(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id uint) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	List(ctx context.Context, offset, limit int) ([]*Admin, int64, error)
	// Delete removes the admin and cascades to its owned VPN users and
	// payment transactions.
	Delete(ctx context.Context, id uint) error
}
