package auth

import "strings"

// Role identifies which protected area a session may enter.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCliente    Role = "CLIENTE"
	RoleEntrenador Role = "ENTRENADOR"
)

// NormalizeRole uppercases and trims a stored role value. Role values
// travel through JSON bodies and the local session record, so comparisons
// must go through here rather than raw string equality.
func NormalizeRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// RolesEqual reports whether two role values match under case-insensitive
// comparison.
func RolesEqual(a, b string) bool {
	return NormalizeRole(a) == NormalizeRole(b)
}

// KnownRole reports whether the value names one of the three roles.
func KnownRole(s string) bool {
	switch NormalizeRole(s) {
	case RoleAdmin, RoleCliente, RoleEntrenador:
		return true
	}
	return false
}
