package model

// Role codes as constants
const (
	RoleAdmin        = "admin"
	RoleStockManager = "stockManager"
	RoleStaff        = "staff"
)

// ValidRoles lists every role the system accepts at registration.
var ValidRoles = []string{RoleAdmin, RoleStockManager, RoleStaff}

// IsValidRole reports whether code is a known role.
func IsValidRole(code string) bool {
	for _, r := range ValidRoles {
		if r == code {
			return true
		}
	}
	return false
}
