package plan

import "context"

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Price        *int64
	DurationDays *int
	DataLimitGB  *int
	IsActive     *bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.DurationDays == nil &&
		p.DataLimitGB == nil && p.IsActive == nil
}

type Repository interface {
	Create(ctx context.Context, p *Plan) error
	Update(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByName(ctx context.Context, name string) (*Plan, error)
	List(ctx context.Context, offset, limit int) ([]*Plan, int64, error)
	ListActive(ctx context.Context) ([]*Plan, error)
	// Delete removes the plan. It returns a conflict error while any VPN
	// user still references the plan (restrict-on-delete).
	Delete(ctx context.Context, id uint) error
}
