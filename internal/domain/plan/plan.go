// Package plan models the priced bundles of duration and data allowance a
// VPN user is provisioned against.
package plan

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/shared/biztime"
)

type Plan struct {
	id    uint
	name  string
	price vo.Money

	// durationDays <= 0 means the provisioned account never expires.
	durationDays int
	// dataLimitGB == 0 means unlimited traffic.
	dataLimitGB int

	isActive bool

	createdAt time.Time
	updatedAt time.Time
}

func NewPlan(name string, price vo.Money, durationDays, dataLimitGB int) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("duration days must be positive")
	}
	if dataLimitGB < 0 {
		return nil, fmt.Errorf("data limit cannot be negative")
	}

	now := biztime.NowUTC()
	return &Plan{
		name:         name,
		price:        price,
		durationDays: durationDays,
		dataLimitGB:  dataLimitGB,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (p *Plan) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	p.name = name
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Plan) ChangePrice(price vo.Money) error {
	if price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	p.price = price
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Plan) ChangeDuration(days int) error {
	if days <= 0 {
		return fmt.Errorf("duration days must be positive")
	}
	p.durationDays = days
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Plan) ChangeDataLimit(gb int) error {
	if gb < 0 {
		return fmt.Errorf("data limit cannot be negative")
	}
	p.dataLimitGB = gb
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Plan) Activate() {
	p.isActive = true
	p.updatedAt = biztime.NowUTC()
}

func (p *Plan) Deactivate() {
	p.isActive = false
	p.updatedAt = biztime.NowUTC()
}

func (p *Plan) SetID(id uint) {
	p.id = id
}

func (p *Plan) ID() uint             { return p.id }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) Price() vo.Money      { return p.price }
func (p *Plan) DurationDays() int    { return p.durationDays }
func (p *Plan) DataLimitGB() int     { return p.dataLimitGB }
func (p *Plan) IsActive() bool       { return p.isActive }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

// ReconstructPlan rebuilds a Plan from persistence.
func ReconstructPlan(id uint, name string, price vo.Money, durationDays, dataLimitGB int, isActive bool, createdAt, updatedAt time.Time) *Plan {
	return &Plan{
		id:           id,
		name:         name,
		price:        price,
		durationDays: durationDays,
		dataLimitGB:  dataLimitGB,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
