package domain

// PermissionSet is the capability view derived from the current user's role.
// It is recomputed on demand and never cached. It gates client affordances
// only; the backend re-enforces every rule independently.
type PermissionSet struct {
	CanCreateProject   bool
	CanManageUsers     bool
	CanViewAllProjects bool

	editAnyProject bool
	userID         int
}

// PermissionsFor maps a user's role display name to its capability set.
// A nil user or an unrecognised role yields the all-false set.
func PermissionsFor(u *User) PermissionSet {
	if u == nil {
		return PermissionSet{}
	}
	switch u.RoleNom {
	case RoleAdmin:
		return PermissionSet{
			CanCreateProject:   true,
			CanManageUsers:     true,
			CanViewAllProjects: true,
			editAnyProject:     true,
			userID:             u.ID,
		}
	case RolePMO:
		return PermissionSet{
			CanCreateProject:   true,
			CanViewAllProjects: true,
			editAnyProject:     true,
			userID:             u.ID,
		}
	case RoleChefProjet:
		return PermissionSet{userID: u.ID}
	default:
		return PermissionSet{}
	}
}

// CanEditProject reports whether the user may edit a project owned by
// ownerID. Admin and PMO roles edit any project; a Chef de Projet edits only
// their own. ownerID zero means the project has no known owner.
func (p PermissionSet) CanEditProject(ownerID int) bool {
	if p.editAnyProject {
		return true
	}
	return p.userID != 0 && ownerID == p.userID
}
