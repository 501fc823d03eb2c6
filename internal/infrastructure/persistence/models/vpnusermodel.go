package models

import "time"

// VpnUserModel is the persistence model for provisioned VPN accounts. The
// admin foreign key cascades so deleting an admin removes their users; the
// plan foreign key restricts so plans in use cannot be deleted.
type VpnUserModel struct {
	ID               uint       `gorm:"primaryKey;autoIncrement"`
	Username         string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	AdminID          uint       `gorm:"not null;index"`
	PlanID           uint       `gorm:"not null;index"`
	ExpiresAt        *time.Time `gorm:"index"`
	IsActive         bool       `gorm:"not null;default:true"`
	RemoteUserID     *string    `gorm:"type:varchar(100)"`
	SubscriptionLink *string    `gorm:"type:varchar(512)"`
	QRCodeLink       *string    `gorm:"type:varchar(512)"`
	Notes            string     `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Admin AdminModel `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE"`
	Plan  PlanModel  `gorm:"foreignKey:PlanID;constraint:OnDelete:RESTRICT"`
}

func (VpnUserModel) TableName() string {
	return "vpn_users"
}
