package domain

// Role is the closed set of caller roles. Authorization decisions switch
// exhaustively on this type so that adding a role forces a review of every
// decision point.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// Valid reports whether the role is a known member of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTenant:
		return true
	}
	return false
}

// Identity is the verified caller extracted from a session token. It is
// rebuilt from the token on every request and passed explicitly through the
// call chain; there is no ambient current-user state.
type Identity struct {
	UserID   int64
	Email    string
	Role     Role
	TenantID *int64
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
