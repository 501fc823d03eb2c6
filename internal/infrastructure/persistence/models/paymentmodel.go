package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentTransactionModel is the persistence model for gateway payments.
// RawRequest and RawResponse keep the gateway payloads for dispute handling.
type PaymentTransactionModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	AdminID     uint    `gorm:"not null;index"`
	Amount      int64   `gorm:"not null"`
	Currency    string  `gorm:"type:varchar(8);not null;default:'IRT'"`
	Gateway     string  `gorm:"type:varchar(32);not null"`
	Status      string  `gorm:"type:varchar(16);not null;index"`
	Authority   *string `gorm:"type:varchar(64);uniqueIndex"`
	RefID       *string `gorm:"type:varchar(64)"`
	Description string  `gorm:"type:varchar(255)"`
	RawRequest  datatypes.JSON
	RawResponse datatypes.JSON
	InitiatedAt time.Time  `gorm:"not null"`
	ConfirmedAt *time.Time `gorm:""`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Admin AdminModel `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE"`
}

func (PaymentTransactionModel) TableName() string {
	return "payment_transactions"
}
