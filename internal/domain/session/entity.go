// internal/domain/session/entity.go
package session

import "fmt"

// Role names gating route access
const (
	RoleCustomer = "CUSTOMER"
	RoleMerchant = "MERCHANT"
	RoleAdmin    = "ADMIN"
)

// User is the authenticated identity held by the client. Roles is the flat,
// normalized role-name set; it is non-empty while authenticated.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// HasRole reports membership in the user's role set
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credentials is the login request payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration request payload
type RegisterData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"` // CUSTOMER or MERCHANT
}

// wireUser is the backend's user shape: role assignments arrive as a nested
// structure and are flattened at this boundary.
type wireUser struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Roles     []roleAssignment `json:"roles"`
}

type roleAssignment struct {
	Role roleRef `json:"role"`
}

type roleRef struct {
	Name string `json:"name"`
}

// normalizeUser maps the backend user shape into the client's User,
// flattening roles[].role.name into a flat set. The result must carry at
// least one role; an identity without roles cannot pass any access gate.
func normalizeUser(w *wireUser) (*User, error) {
	roles := make([]string, 0, len(w.Roles))
	for _, assignment := range w.Roles {
		if assignment.Role.Name != "" {
			roles = append(roles, assignment.Role.Name)
		}
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("account %s has no roles assigned", w.Email)
	}

	return &User{
		ID:        w.ID,
		Email:     w.Email,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Roles:     roles,
	}, nil
}
