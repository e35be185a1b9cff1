package domain

import "testing"

func TestParseRoles(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []Role
	}{
		{"known roles", []string{"ADMIN", "MODERATOR"}, []Role{RoleAdmin, RoleModerator}},
		{"unknown dropped", []string{"ADMIN", "SUPERUSER"}, []Role{RoleAdmin}},
		{"duplicates collapse", []string{"ADMIN", "ADMIN"}, []Role{RoleAdmin}},
		{"nil input", nil, []Role{}},
		{"all unknown", []string{"x", "y"}, []Role{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRoles(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("ParseRoles(%v) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ParseRoles(%v) = %v, want %v", tc.in, got, tc.want)
				}
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	roles := []Role{RoleAdmin}
	if !HasRole(roles, RoleAdmin) {
		t.Errorf("expected ADMIN to be present")
	}
	if HasRole(roles, RoleModerator) {
		t.Errorf("MODERATOR should not be present")
	}
	if HasRole(nil, RoleAdmin) {
		t.Errorf("empty role set must never match")
	}
}
