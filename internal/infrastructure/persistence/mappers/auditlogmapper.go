package mappers

import (
	"github.com/marzgate/marzgate/internal/domain/auditlog"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func AuditEntryToModel(e *auditlog.Entry) *models.ActionLogModel {
	return &models.ActionLogModel{
		ID:           e.ID(),
		AdminID:      e.AdminID(),
		SuperAdminID: e.SuperAdminID(),
		Action:       e.Action(),
		Details:      mapToJSON(e.Details()),
		CreatedAt:    e.CreatedAt(),
	}
}

func AuditEntryToDomain(m *models.ActionLogModel) *auditlog.Entry {
	return auditlog.ReconstructEntry(
		m.ID,
		m.AdminID,
		m.SuperAdminID,
		m.Action,
		jsonToMap(m.Details),
		m.CreatedAt,
	)
}

func AuditEntriesToDomain(ms []models.ActionLogModel) []*auditlog.Entry {
	out := make([]*auditlog.Entry, 0, len(ms))
	for i := range ms {
		out = append(out, AuditEntryToDomain(&ms[i]))
	}
	return out
}
