package models

import "time"

// PlanModel is the persistence model for subscription plans. Price is stored
// in the smallest currency unit; DataLimitGB of zero means unlimited.
type PlanModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Price        int64  `gorm:"not null"`
	Currency     string `gorm:"type:varchar(8);not null;default:'IRT'"`
	DurationDays int    `gorm:"not null"`
	DataLimitGB  int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
