// Package authorization defines the actor roles carried inside issued tokens.
// The role is explicit in the token claims so a numeric id collision between
// the admins and super_admins tables can never be misresolved.
package authorization

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}
