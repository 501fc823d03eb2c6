package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// DeletePlanUseCase removes a plan. Deletion is refused with a conflict
// while any VPN user still references the plan.
type DeletePlanUseCase struct {
	planRepo domainPlan.Repository
	recorder *audit.Recorder
	logger   logger.Interface
}

func NewDeletePlanUseCase(
	planRepo domainPlan.Repository,
	recorder *audit.Recorder,
	log logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo: planRepo,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, superAdminID, planID uint) error {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return err
	}

	if err := uc.planRepo.Delete(ctx, planID); err != nil {
		if errors.IsConflictError(err) || errors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete plan", "plan_id", planID, "error", err)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminDeletePlan, map[string]any{
		"plan_id": planID,
		"name":    p.Name(),
	})
	uc.logger.Infow("plan deleted", "plan_id", planID)

	return nil
}
