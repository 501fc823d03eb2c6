package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/marzgate/marzgate/internal/domain/payment"
	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/infrastructure/persistence/models"
)

func PaymentToModel(t *payment.Transaction) *models.PaymentTransactionModel {
	return &models.PaymentTransactionModel{
		ID:          t.ID(),
		AdminID:     t.AdminID(),
		Amount:      t.Amount().Amount(),
		Currency:    t.Amount().Currency(),
		Gateway:     t.Gateway(),
		Status:      string(t.Status()),
		Authority:   t.Authority(),
		RefID:       t.RefID(),
		Description: t.Description(),
		RawRequest:  mapToJSON(t.RawRequest()),
		RawResponse: mapToJSON(t.RawResponse()),
		InitiatedAt: t.InitiatedAt(),
		ConfirmedAt: t.ConfirmedAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func PaymentToDomain(m *models.PaymentTransactionModel) *payment.Transaction {
	return payment.ReconstructTransaction(
		m.ID,
		m.AdminID,
		vo.NewMoney(m.Amount, m.Currency),
		m.Gateway,
		vo.TransactionStatus(m.Status),
		m.Authority,
		m.RefID,
		m.Description,
		m.InitiatedAt,
		m.ConfirmedAt,
		jsonToMap(m.RawRequest),
		jsonToMap(m.RawResponse),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func PaymentsToDomain(ms []models.PaymentTransactionModel) []*payment.Transaction {
	out := make([]*payment.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, PaymentToDomain(&ms[i]))
	}
	return out
}

func mapToJSON(m map[string]any) datatypes.JSON {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func jsonToMap(j datatypes.JSON) map[string]any {
	if len(j) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(j, &m); err != nil {
		return nil
	}
	return m
}
