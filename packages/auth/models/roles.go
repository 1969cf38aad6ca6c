package models

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// GetDefaultRoles is what a self-registered account starts with.
func GetDefaultRoles() Roles {
	return Roles{RoleGuest}
}

func GetAllRoles() []string {
	return []string{RoleAdmin, RoleGuest}
}

func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
