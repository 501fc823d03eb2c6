package models

import "time"

// AdminModel is the persistence model for admin accounts. Balance is stored
// in the smallest currency unit.
type AdminModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Balance      int64  `gorm:"not null;default:0"`
	Currency     string `gorm:"type:varchar(8);not null;default:'IRT'"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedBy    *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminModel) TableName() string {
	return "admins"
}
