package auth_test

import (
	"testing"

	"github.com/clubhub/clubhub/internal/auth"
	_ "github.com/clubhub/clubhub/testing"
)

func TestEvaluate(t *testing.T) {
	admin := &auth.UserRecord{ID: "u1", Email: "a@test.local", Role: auth.RoleAdmin}
	officer := &auth.UserRecord{ID: "u2", Email: "o@test.local", Role: auth.RoleOfficer}
	member := &auth.UserRecord{ID: "u3", Email: "m@test.local", Role: auth.RoleMember}

	cases := []struct {
		name     string
		record   *auth.UserRecord
		required auth.Role
		want     auth.Decision
	}{
		{"nil record denied", nil, auth.RoleAdmin, auth.DecisionDeny},
		{"admin allowed", admin, auth.RoleAdmin, auth.DecisionAllow},
		{"member denied admin", member, auth.RoleAdmin, auth.DecisionDeny},
		{"officer does not inherit admin", officer, auth.RoleAdmin, auth.DecisionDeny},
		{"member allowed member", member, auth.RoleMember, auth.DecisionAllow},
		{"admin does not match member requirement", admin, auth.RoleMember, auth.DecisionDeny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := auth.Evaluate(tc.record, tc.required); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleMember, auth.RoleOfficer, auth.RoleAdmin} {
		if !auth.ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if auth.ValidRole("superuser") {
		t.Fatal("expected unknown role to be invalid")
	}
	if auth.ValidRole("") {
		t.Fatal("expected empty role to be invalid")
	}
}
