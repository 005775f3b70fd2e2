package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleAssignmentUnmarshalNested(t *testing.T) {
	var role RoleAssignment
	require.NoError(t, json.Unmarshal([]byte(`{"role":{"name":"admin"}}`), &role))
	assert.Equal(t, "admin", role.Name)
}

func TestRoleAssignmentUnmarshalFlattened(t *testing.T) {
	var role RoleAssignment
	require.NoError(t, json.Unmarshal([]byte(`{"name":"manager"}`), &role))
	assert.Equal(t, "manager", role.Name)
}

func TestRoleAssignmentNestedWinsOverFlattened(t *testing.T) {
	var role RoleAssignment
	require.NoError(t, json.Unmarshal([]byte(`{"name":"user","role":{"name":"admin"}}`), &role))
	assert.Equal(t, "admin", role.Name)
}

func TestProfileDecodesMixedRoleShapes(t *testing.T) {
	data := []byte(`{
		"id": 7,
		"name": "Jane Doe",
		"email": "jane@example.com",
		"roles": [{"name":"user"}, {"role":{"name":"admin"}}]
	}`)

	var profile Profile
	require.NoError(t, json.Unmarshal(data, &profile))

	require.Len(t, profile.Roles, 2)
	assert.Equal(t, "user", profile.Roles[0].Name)
	assert.Equal(t, "admin", profile.Roles[1].Name)
	assert.True(t, profile.IsAdmin())
}

func TestProfileIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    bool
	}{
		{"nil profile", nil, false},
		{"no roles", &Profile{Name: "Jane"}, false},
		{"non-admin roles", &Profile{Roles: []RoleAssignment{{Name: "user"}, {Name: "manager"}}}, false},
		{"admin role", &Profile{Roles: []RoleAssignment{{Name: "user"}, {Name: "admin"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.IsAdmin())
		})
	}
}

func TestProfileHasRole(t *testing.T) {
	profile := &Profile{Roles: []RoleAssignment{{Name: "manager"}}}

	assert.True(t, profile.HasRole("manager"))
	assert.False(t, profile.HasRole("admin"))
	assert.False(t, (*Profile)(nil).HasRole("manager"))
}

func TestProfileClone(t *testing.T) {
	profile := &Profile{
		ID:    1,
		Name:  "Jane",
		Roles: []RoleAssignment{{Name: "admin"}},
	}

	clone := profile.Clone()
	clone.Roles[0].Name = "user"

	assert.Equal(t, "admin", profile.Roles[0].Name)
	assert.Nil(t, (*Profile)(nil).Clone())
}
