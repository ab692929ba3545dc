package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of platform roles. Stored values are canonically
// uppercase; ParseRole normalizes legacy lowercase rows at the boundary.
type Role string

const (
	RoleMember     Role = "MEMBER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ParseRole validates a raw role value from the database or a request body.
// Values outside the closed set are rejected rather than passed through.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleMember:
		return RoleMember, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// HasAdminAccess reports whether the role may use the admin dashboard at all.
func (r Role) HasAdminAccess() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}
