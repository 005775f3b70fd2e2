package session

import "encoding/json"

// AdminRole is the role name that grants access to administrative screens.
const AdminRole = "admin"

// Profile is the user record attached to a logged-in session.
type Profile struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []RoleAssignment `json:"roles"`
}

// RoleAssignment is the canonical role shape.
//
// The backend serves roles in two shapes: the nested assignment
// {"role":{"name":"admin"}} and the flattened {"name":"admin"}. Both decode
// into the canonical form here, at the ingestion boundary, so nothing
// downstream ever checks more than one shape.
type RoleAssignment struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both role shapes.
func (r *RoleAssignment) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name string `json:"name"`
		Role *struct {
			Name string `json:"name"`
		} `json:"role"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Role != nil && aux.Role.Name != "" {
		r.Name = aux.Role.Name
		return nil
	}
	r.Name = aux.Name
	return nil
}

// HasRole reports whether the profile carries the named role.
// A nil profile or an empty role list has no roles.
func (p *Profile) HasRole(name string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.HasRole(AdminRole)
}

// Clone returns a deep copy so snapshot holders cannot mutate store state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Roles = make([]RoleAssignment, len(p.Roles))
	copy(clone.Roles, p.Roles)
	return &clone
}
