package enums

import "fmt"

// Role identifies the kind of actor behind an authenticated request. Builders
// and admins live in the users table; buyers have their own identity records.
type Role string

const (
	RoleBuilder Role = "builder"
	RoleAdmin   Role = "admin"
	RoleBuyer   Role = "buyer"
)

var validRoles = []Role{
	RoleBuilder,
	RoleAdmin,
	RoleBuyer,
}

// UserRoles lists the roles persisted on users rows.
var UserRoles = []Role{RoleBuilder, RoleAdmin}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsUserRole reports whether the role may be stored on a users row.
func (r Role) IsUserRole() bool {
	for _, candidate := range UserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
