package mappers

import (
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/domain/plan"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func PlanToModel(p *plan.Plan) *models.PlanModel {
	return &models.PlanModel{
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

func PlanToDomain(m *models.PlanModel) *plan.Plan {
	return plan.ReconstructPlan(
		m.ID,
		m.Name,
		vo.NewMoney(m.Price, m.Currency),
		m.DurationDays,
		m.DataLimitGB,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func PlansToDomain(ms []models.PlanModel) []*plan.Plan {
	out := make([]*plan.Plan, 0, len(ms))
	for i := range ms {
		out = append(out, PlanToDomain(&ms[i]))
	}
	return out
}
