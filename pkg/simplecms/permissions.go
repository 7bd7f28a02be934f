package simplecms

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Role is a named collection of permissions granted to an actor.
type Role string

// Role constants (typed).
const (
	RoleWriter    Role = "writer"
	RoleEditor    Role = "editor"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// Permission is a single guarded capability.
type Permission string

// Permission constants (typed).
const (
	PermissionCreate        Permission = "create"
	PermissionEditOwn       Permission = "edit-own"
	PermissionEditAny       Permission = "edit-any"
	PermissionPublish       Permission = "publish"
	PermissionDelete        Permission = "delete"
	PermissionManageAuthors Permission = "manage-authors"
	PermissionManage        Permission = "manage"
)

// AllPermissions returns every defined permission.
func AllPermissions() []Permission {
	return []Permission{
		PermissionCreate,
		PermissionEditOwn,
		PermissionEditAny,
		PermissionPublish,
		PermissionDelete,
		PermissionManageAuthors,
		PermissionManage,
	}
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the set's permissions, sorted.
func (s PermissionSet) List() []Permission {
	perms := maps.Keys(s)
	slices.Sort(perms)
	return perms
}

// PermissionTable maps each role to the permissions it grants. It is plain
// configuration data and is injected at service construction, so tests can
// swap it without touching process-wide state.
type PermissionTable map[Role]PermissionSet

// Can reports whether role carries p. Roles not present in the table carry
// nothing.
func (t PermissionTable) Can(role Role, p Permission) bool {
	return t[role].Has(p)
}

// Roles returns the roles in the table, sorted.
func (t PermissionTable) Roles() []Role {
	roles := maps.Keys(t)
	slices.Sort(roles)
	return roles
}

// DefaultPermissions returns the standard editorial permission lattice.
// Admin simply holds the complete set; no code path special-cases the role.
func DefaultPermissions() PermissionTable {
	return PermissionTable{
		RoleWriter:    NewPermissionSet(PermissionCreate, PermissionEditOwn),
		RoleEditor:    NewPermissionSet(PermissionCreate, PermissionEditOwn, PermissionEditAny, PermissionDelete),
		RolePublisher: NewPermissionSet(PermissionCreate, PermissionEditOwn, PermissionEditAny, PermissionPublish, PermissionDelete),
		RoleAdmin:     NewPermissionSet(AllPermissions()...),
	}
}
