package usecases

import (
	"context"

	"github.com/marzgate/marzgate/internal/application/plan/dto"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo domainPlan.Repository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo domainPlan.Repository, log logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		logger:   log,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*dto.PlanResponse, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return ToPlanResponse(p), nil
}
