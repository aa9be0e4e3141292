// Package auth provides staff credentials, bearer tokens, and the role
// checks the HTTP layer authorizes with.
package auth

// Role is the capability level of a staff account
type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// RoleFromAdmin maps the stored admin flag to a role value
func RoleFromAdmin(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleStaff
}

// Identity is the authenticated caller, carried in the request context.
// Authorization decisions are made on this value alone.
type Identity struct {
	StaffID string
	Role    Role
}

// IsAdmin reports whether the identity holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
