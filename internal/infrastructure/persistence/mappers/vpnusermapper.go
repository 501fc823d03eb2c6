package mappers

import (
	"github.com/marzgate/marzgate/internal/domain/vpnuser"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func VpnUserToModel(u *vpnuser.VpnUser) *models.VpnUserModel {
	return &models.VpnUserModel{
		ID:               u.ID(),
		Username:         u.Username(),
		AdminID:          u.AdminID(),
		PlanID:           u.PlanID(),
		ExpiresAt:        u.ExpiresAt(),
		IsActive:         u.IsActive(),
		RemoteUserID:     u.RemoteUserID(),
		SubscriptionLink: u.SubscriptionLink(),
		QRCodeLink:       u.QRCodeLink(),
		Notes:            u.Notes(),
		CreatedAt:        u.CreatedAt(),
		UpdatedAt:        u.UpdatedAt(),
	}
}

func VpnUserToDomain(m *models.VpnUserModel) *vpnuser.VpnUser {
	return vpnuser.ReconstructVpnUser(
		m.ID,
		m.Username,
		m.AdminID,
		m.PlanID,
		m.ExpiresAt,
		m.IsActive,
		m.RemoteUserID,
		m.SubscriptionLink,
		m.QRCodeLink,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func VpnUsersToDomain(ms []models.VpnUserModel) []*vpnuser.VpnUser {
	out := make([]*vpnuser.VpnUser, 0, len(ms))
	for i := range ms {
		out = append(out, VpnUserToDomain(&ms[i]))
	}
	return out
}
