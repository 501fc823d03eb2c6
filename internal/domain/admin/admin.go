// Package admin models tenant operator accounts. An admin owns its VPN users
// and payment transactions and carries a prepaid balance that is only ever
// credited through a verified payment transaction.
package admin

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/marzgate/marzgate/internal/domain/payment/valueobjects"
	"github.com/marzgate/marzgate/internal/shared/biztime"
)

type Admin struct {
	id           uint
	username     string
	email        string
	passwordHash string
	balance      vo.Money
	isActive     bool

	// createdBy references the super admin that provisioned this account.
	// Weak reference: the super admin may be deleted independently.
	createdBy *uint

	createdAt time.Time
	updatedAt time.Time
}

func NewAdmin(username, email, passwordHash string, createdBy *uint) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email = strings.TrimSpace(email); email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := biztime.NowUTC()
	return &Admin{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		balance:      vo.NewMoney(0, ""),
		isActive:     true,
		createdBy:    createdBy,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Credit increases the balance by the given amount. The amount must be
// positive; the balance can never go negative through this path.
func (a *Admin) Credit(amount vo.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("credit amount must be positive")
	}
	newBalance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = newBalance
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Admin) Rename(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	a.username = username
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Admin) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	a.email = email
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Admin) ChangePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	a.passwordHash = hash
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Admin) Activate() {
	a.isActive = true
	a.updatedAt = biztime.NowUTC()
}

func (a *Admin) Deactivate() {
	a.isActive = false
	a.updatedAt = biztime.NowUTC()
}

// SetID writes back the auto-generated ID after persistence.
func (a *Admin) SetID(id uint) {
	a.id = id
}

func (a *Admin) ID() uint             { return a.id }
func (a *Admin) Username() string     { return a.username }
func (a *Admin) Email() string        { return a.email }
func (a *Admin) PasswordHash() string { return a.passwordHash }
func (a *Admin) Balance() vo.Money    { return a.balance }
func (a *Admin) IsActive() bool       { return a.isActive }
func (a *Admin) CreatedBy() *uint     { return a.createdBy }
func (a *Admin) CreatedAt() time.Time { return a.createdAt }
func (a *Admin) UpdatedAt() time.Time { return a.updatedAt }

// ReconstructAdmin rebuilds an Admin from persistence.
func ReconstructAdmin(
	id uint,
	username, email, passwordHash string,
	balance vo.Money,
	isActive bool,
	createdBy *uint,
	createdAt, updatedAt time.Time,
) *Admin {
	return &Admin{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		balance:      balance,
		isActive:     isActive,
		createdBy:    createdBy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
