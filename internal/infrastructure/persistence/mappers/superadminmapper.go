package mappers

import (
	"github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func SuperAdminToModel(s *superadmin.SuperAdmin) *models.SuperAdminModel {
	return &models.SuperAdminModel{
		ID:           s.ID(),
		Username:     s.Username(),
		Email:        s.Email(),
		PasswordHash: s.PasswordHash(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func SuperAdminToDomain(m *models.SuperAdminModel) *superadmin.SuperAdmin {
	return superadmin.ReconstructSuperAdmin(
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
