package entity_test

import (
	"testing"

	"newsroom/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    entity.Role
		wantErr bool
	}{
		{"reader", entity.RoleReader, false},
		{"journalist", entity.RoleJournalist, false},
		{"editor", entity.RoleEditor, false},
		{"admin", "", true},
		{"Reader", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := entity.ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): want error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleGroup(t *testing.T) {
	cases := []struct {
		role entity.Role
		want string
		ok   bool
	}{
		{entity.RoleReader, "Reader", true},
		{entity.RoleJournalist, "Journalist", true},
		{entity.RoleEditor, "Editor", true},
		{entity.Role("admin"), "", false},
	}
	for _, tc := range cases {
		got, ok := tc.role.Group()
		if got != tc.want || ok != tc.ok {
			t.Errorf("Group(%q) = (%q, %v), want (%q, %v)", tc.role, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAssignGroups(t *testing.T) {
	u := &entity.User{Role: entity.RoleJournalist, Groups: []string{"Reader", "stale"}}
	u.AssignGroups()
	if len(u.Groups) != 1 || u.Groups[0] != "Journalist" {
		t.Fatalf("groups = %v, want [Journalist]", u.Groups)
	}

	// Idempotent: assigning again does not accumulate.
	u.AssignGroups()
	if len(u.Groups) != 1 {
		t.Fatalf("groups after second assign = %v", u.Groups)
	}

	// An unrecognized role clears memberships entirely.
	u.Role = "superuser"
	u.AssignGroups()
	if len(u.Groups) != 0 {
		t.Fatalf("groups for invalid role = %v, want empty", u.Groups)
	}
}
