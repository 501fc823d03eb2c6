// Package superadmin models the root operator accounts that manage admins
// and plans.
package superadmin

import (
	"fmt"
	"strings"
	"time"

	"github.com/marzgate/marzgate/internal/shared/biztime"
)

type SuperAdmin struct {
	id           uint
	username     string
	email        *string
	passwordHash string

	createdAt time.Time
	updatedAt time.Time
}

func NewSuperAdmin(username string, email *string, passwordHash string) (*SuperAdmin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := biztime.NowUTC()
	return &SuperAdmin{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (s *SuperAdmin) SetID(id uint) {
	s.id = id
}

func (s *SuperAdmin) ID() uint             { return s.id }
func (s *SuperAdmin) Username() string     { return s.username }
func (s *SuperAdmin) Email() *string       { return s.email }
func (s *SuperAdmin) PasswordHash() string { return s.passwordHash }
func (s *SuperAdmin) CreatedAt() time.Time { return s.createdAt }
func (s *SuperAdmin) UpdatedAt() time.Time { return s.updatedAt }

// ReconstructSuperAdmin rebuilds a SuperAdmin from persistence.
func ReconstructSuperAdmin(id uint, username string, email *string, passwordHash string, createdAt, updatedAt time.Time) *SuperAdmin {
	return &SuperAdmin{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
