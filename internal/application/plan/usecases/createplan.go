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

type CreatePlanUseCase struct {
	planRepo domainPlan.Repository
	recorder *audit.Recorder
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo domainPlan.Repository,
	recorder *audit.Recorder,
	log logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		recorder: recorder,
		logger:   log,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, superAdminID uint, request dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uc.logger.Infow("creating plan", "name", request.Name, "super_admin_id", superAdminID)

	p, err := domainPlan.NewPlan(request.Name, vo.NewMoney(request.Price, ""), request.DurationDays, request.DataLimitGB)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan data", err.Error())
	}

	if err := uc.planRepo.Create(ctx, p); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to persist plan", "error", err)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	uc.recorder.RecordSuperAdmin(superAdminID, auditlog.ActionSuperAdminCreatePlan, map[string]any{
		"plan_id": p.ID(),
		"name":    p.Name(),
	})
	uc.logger.Infow("plan created", "plan_id", p.ID())

	return ToPlanResponse(p), nil
}

// ToPlanResponse maps the entity to its API representation.
func ToPlanResponse(p *domainPlan.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		Price:        p.Price().Amount(),
		Currency:     p.Price().Currency(),
		DurationDays: p.DurationDays(),
		DataLimitGB:  p.DataLimitGB(),
		IsActive:     p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}
