package domain

import "testing"

func TestPermissionsFor_Admin(t *testing.T) {
	p := PermissionsFor(&User{ID: 1, RoleNom: RoleAdmin})
	if !p.CanCreateProject || !p.CanManageUsers || !p.CanViewAllProjects {
		t.Fatalf("admin should hold every capability: %+v", p)
	}
	if !p.CanEditProject(42) {
		t.Fatalf("admin should edit any project")
	}
}

func TestPermissionsFor_PMO(t *testing.T) {
	p := PermissionsFor(&User{ID: 2, RoleNom: RolePMO})
	if !p.CanCreateProject || !p.CanViewAllProjects {
		t.Fatalf("pmo should create and view all projects: %+v", p)
	}
	if p.CanManageUsers {
		t.Fatalf("pmo must not manage users")
	}
	if !p.CanEditProject(42) {
		t.Fatalf("pmo should edit any project")
	}
}

func TestPermissionsFor_ChefProjet(t *testing.T) {
	p := PermissionsFor(&User{ID: 3, RoleNom: RoleChefProjet})
	if p.CanCreateProject || p.CanManageUsers || p.CanViewAllProjects {
		t.Fatalf("chef de projet should hold no global capability: %+v", p)
	}
	if !p.CanEditProject(3) {
		t.Fatalf("chef de projet should edit their own project")
	}
	if p.CanEditProject(9) {
		t.Fatalf("chef de projet must not edit another owner's project")
	}
	if p.CanEditProject(0) {
		t.Fatalf("ownerless project must not be editable by chef de projet")
	}
}

func TestPermissionsFor_NilAndUnknown(t *testing.T) {
	for name, u := range map[string]*User{
		"nil user":     nil,
		"unknown role": {ID: 5, RoleNom: "Stagiaire"},
	} {
		p := PermissionsFor(u)
		if p.CanCreateProject || p.CanManageUsers || p.CanViewAllProjects {
			t.Fatalf("%s: expected all-false capabilities, got %+v", name, p)
		}
		if p.CanEditProject(5) {
			t.Fatalf("%s: expected no edit rights", name)
		}
	}
}
