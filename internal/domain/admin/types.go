package admin

import "github.com/cockroachdb/errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleCrew  Role = "crew"
	RoleSuper Role = "super"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCrew, RoleSuper:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
