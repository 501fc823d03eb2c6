package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// ActionLogResponse is the API representation of one audit entry.
type ActionLogResponse struct {
	ID           uint           `json:"id"`
	AdminID      *uint          `json:"admin_id,omitempty"`
	SuperAdminID *uint          `json:"super_admin_id,omitempty"`
	Action       string         `json:"action"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ListActionsUseCase pages through the audit log for the super admin
// console. An optional admin id narrows the listing to one reseller.
type ListActionsUseCase struct {
	repo   auditlog.Repository
	logger logger.Interface
}

func NewListActionsUseCase(repo auditlog.Repository, log logger.Interface) *ListActionsUseCase {
	return &ListActionsUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *ListActionsUseCase) Execute(ctx context.Context, pagination utils.Pagination, adminID *uint) ([]*ActionLogResponse, int64, error) {
	var (
		entries []*auditlog.Entry
		total   int64
		err     error
	)

	if adminID != nil {
		entries, total, err = uc.repo.ListByAdminID(ctx, *adminID, pagination.Offset(), pagination.PageSize)
	} else {
		entries, total, err = uc.repo.List(ctx, pagination.Offset(), pagination.PageSize)
	}
	if err != nil {
		uc.logger.Errorw("failed to list action logs", "error", err)
		return nil, 0, fmt.Errorf("failed to list action logs: %w", err)
	}

	responses := make([]*ActionLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, &ActionLogResponse{
			ID:           e.ID(),
			AdminID:      e.AdminID(),
			SuperAdminID: e.SuperAdminID(),
			Action:       e.Action(),
			Details:      e.Details(),
			CreatedAt:    e.CreatedAt(),
		})
	}
	return responses, total, nil
}
