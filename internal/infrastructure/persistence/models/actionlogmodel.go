package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActionLogModel is the persistence model for audit entries. Exactly one of
// AdminID / SuperAdminID is set per row.
type ActionLogModel struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"`
	AdminID      *uint   `gorm:"index"`
	SuperAdminID *uint   `gorm:"index"`
	Action       string  `gorm:"type:varchar(64);not null;index"`
	Details      datatypes.JSON
	CreatedAt    time.Time `gorm:"index"`

	Admin      *AdminModel      `gorm:"foreignKey:AdminID;constraint:OnDelete:SET NULL"`
	SuperAdmin *SuperAdminModel `gorm:"foreignKey:SuperAdminID;constraint:OnDelete:SET NULL"`
}

func (ActionLogModel) TableName() string {
	return "action_logs"
}
