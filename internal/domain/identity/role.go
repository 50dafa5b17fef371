package identity

import "fmt"

// Role is the closed set of caller roles carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Caller is the authenticated principal behind a request.
type Caller struct {
	ID   uint
	Role Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanManage reports whether the caller may change a record owned by ownerID.
func (c Caller) CanManage(ownerID uint) bool {
	return c.IsAdmin() || (c.ID != 0 && c.ID == ownerID)
}
