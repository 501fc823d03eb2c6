package auditlog

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByAdminID(ctx context.Context, adminID uint, offset, limit int) ([]*Entry, int64, error)
	List(ctx context.Context, offset, limit int) ([]*Entry, int64, error)
}
