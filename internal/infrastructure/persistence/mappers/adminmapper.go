package mappers

import (
	"github.com/marzgate/marzgate/internal/domain/admin"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func AdminToModel(a *admin.Admin) *models.AdminModel {
	return &models.AdminModel{
		ID:           a.ID(),
		Username:     a.Username(),
		Email:        a.Email(),
		PasswordHash: a.PasswordHash(),
		Balance:      a.Balance().Amount(),
		Currency:     a.Balance().Currency(),
		IsActive:     a.IsActive(),
		CreatedBy:    a.CreatedBy(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func AdminToDomain(m *models.AdminModel) *admin.Admin {
	return admin.ReconstructAdmin(
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		vo.NewMoney(m.Balance, m.Currency),
		m.IsActive,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func AdminsToDomain(ms []models.AdminModel) []*admin.Admin {
	out := make([]*admin.Admin, 0, len(ms))
	for i := range ms {
		out = append(out, AdminToDomain(&ms[i]))
	}
	return out
}
