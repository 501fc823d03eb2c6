package models

import "time"

// SuperAdminModel is the persistence model for super admin accounts.
type SuperAdminModel struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"`
	Username     string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SuperAdminModel) TableName() string {
	return "super_admins"
}
