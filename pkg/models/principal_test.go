package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"manager", RoleManager, true},
		{"annotator", RoleAnnotator, true},
		{"Manager", "", false},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &Principal{UserID: 1, Roles: []Role{RoleAnnotator}}

	if !p.HasRole(RoleAnnotator) {
		t.Error("expected annotator role to be present")
	}
	if p.HasRole(RoleManager) {
		t.Error("expected manager role to be absent")
	}
}

func TestPrincipal_CanCreateProjects(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want bool
	}{
		{"superuser without roles", &Principal{IsSuperuser: true}, true},
		{"manager", &Principal{Roles: []Role{RoleManager}}, true},
		{"annotator", &Principal{Roles: []Role{RoleAnnotator}}, false},
		{"no roles", &Principal{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CanCreateProjects(); got != tt.want {
				t.Errorf("CanCreateProjects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_Principal(t *testing.T) {
	u := &User{ID: 7, IsSuperuser: true, Roles: []Role{RoleManager}}
	p := u.Principal()

	if p.UserID != 7 || !p.IsSuperuser || !p.HasRole(RoleManager) {
		t.Errorf("unexpected principal: %+v", p)
	}
}
