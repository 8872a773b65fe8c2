package enums

import "fmt"

// UserRole represents a staff member's job function.
type UserRole string

const (
	UserRoleEmployee     UserRole = "employee"
	UserRoleManager      UserRole = "manager"
	UserRoleAdmin        UserRole = "admin"
	UserRoleFrontDesk    UserRole = "front_desk"
	UserRoleHousekeeping UserRole = "housekeeping"
	UserRoleMaintenance  UserRole = "maintenance"
)

var validUserRoles = []UserRole{
	UserRoleEmployee,
	UserRoleManager,
	UserRoleAdmin,
	UserRoleFrontDesk,
	UserRoleHousekeeping,
	UserRoleMaintenance,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// CanManageInventory reports whether the role may mutate stock directly
// and finalize pending update requests.
func (r UserRole) CanManageInventory() bool {
	return r == UserRoleManager || r == UserRoleAdmin
}

// CanSubmitUpdateRequests reports whether the role may record a proposed
// quantity change for later review.
func (r UserRole) CanSubmitUpdateRequests() bool {
	return r == UserRoleEmployee
}
