package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/application/plan/dto"
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

// UpdatePlanUseCase applies a partial update. Price and duration changes
// only affect accounts provisioned afterwards; existing VPN users keep the
// terms they were created under.
type UpdatePlanUseCase struct {
	planRepo domainPlan.Repository
	recorder *audit.Recorder
	logger   logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo domainPlan.Repository,
	recorder *audit.Recorder,
	log logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, superAdminID, planID uint, request dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if request.Name != nil {
		if err := p.Rename(*request.Name); err != nil {
			return nil, errors.NewValidationError("invalid plan name", err.Error())
		}
		changed["name"] = *request.Name
	}
	if request.Price != nil {
		if err := p.ChangePrice(vo.NewMoney(*request.Price, "")); err != nil {
			return nil, errors.NewValidationError("invalid plan price", err.Error())
		}
		changed["price"] = *request.Price
	}
	if request.DurationDays != nil {
		if err := p.ChangeDuration(*request.DurationDays); err != nil {
			return nil, errors.NewValidationError("invalid plan duration", err.Error())
		}
		changed["duration_days"] = *request.DurationDays
	}
	if request.DataLimitGB != nil {
		if err := p.ChangeDataLimit(*request.DataLimitGB); err != nil {
			return nil, errors.NewValidationError("invalid plan data limit", err.Error())
		}
		changed["data_limit_gb"] = *request.DataLimitGB
	}
	if request.IsActive != nil {
		if *request.IsActive {
			p.Activate()
		} else {
			p.Deactivate()
		}
		changed["is_active"] = *request.IsActive
	}

	if len(changed) == 0 {
		return ToPlanResponse(p), nil
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update plan", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminUpdatePlan, map[string]any{
		"plan_id": planID,
		"fields":  changed,
	})
	uc.logger.Infow("plan updated", "plan_id", planID)

	return ToPlanResponse(p), nil
}
