package usecases

import (
	"context"
	"fmt"

	"github.com/marzgate/marzgate/internal/application/plan/dto"
	domainPlan "github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type ListPlansUseCase struct {
	planRepo domainPlan.Repository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo domainPlan.Repository, log logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   log,
	}
}

// Execute lists plans. activeOnly narrows the listing to purchasable plans,
// which is what admin accounts see.
func (uc *ListPlansUseCase) Execute(ctx context.Context, pagination utils.Pagination, activeOnly bool) ([]*dto.PlanResponse, int64, error) {
	if activeOnly {
		plans, err := uc.planRepo.ListActive(ctx)
		if err != nil {
			uc.logger.Errorw("failed to list active plans", "error", err)
			return nil, 0, fmt.Errorf("failed to list plans: %w", err)
		}
		return toPlanResponses(plans), int64(len(plans)), nil
	}

	plans, total, err := uc.planRepo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}
	return toPlanResponses(plans), total, nil
}

func toPlanResponses(plans []*domainPlan.Plan) []*dto.PlanResponse {
	responses := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, ToPlanResponse(p))
	}
	return responses
}
