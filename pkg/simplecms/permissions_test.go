package simplecms

import (
	"testing"
)

// TestDefaultPermissions pins the editorial lattice: each tier adds to the
// one below it, and admin holds the complete set rather than bypassing
// checks.
func TestDefaultPermissions(t *testing.T) {
	table := DefaultPermissions()

	tests := []struct {
		name string
		role Role
		perm Permission
		want bool
	}{
		{"writer can create", RoleWriter, PermissionCreate, true},
		{"writer can edit own", RoleWriter, PermissionEditOwn, true},
		{"writer cannot edit any", RoleWriter, PermissionEditAny, false},
		{"writer cannot publish", RoleWriter, PermissionPublish, false},
		{"writer cannot delete", RoleWriter, PermissionDelete, false},
		{"editor can edit any", RoleEditor, PermissionEditAny, true},
		{"editor can delete", RoleEditor, PermissionDelete, true},
		{"editor cannot publish", RoleEditor, PermissionPublish, false},
		{"editor cannot manage", RoleEditor, PermissionManage, false},
		{"publisher can publish", RolePublisher, PermissionPublish, true},
		{"publisher can delete", RolePublisher, PermissionDelete, true},
		{"publisher cannot manage authors", RolePublisher, PermissionManageAuthors, false},
		{"admin can manage", RoleAdmin, PermissionManage, true},
		{"admin can manage authors", RoleAdmin, PermissionManageAuthors, true},
		{"unknown role carries nothing", Role("intern"), PermissionCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Can(tt.role, tt.perm); got != tt.want {
				t.Errorf("Can(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
			}
		})
	}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	table := DefaultPermissions()
	for _, p := range AllPermissions() {
		if !table.Can(RoleAdmin, p) {
			t.Errorf("admin missing permission %q", p)
		}
	}
}

func TestPermissionSet(t *testing.T) {
	s := NewPermissionSet(PermissionPublish, PermissionCreate, PermissionPublish)
	if !s.Has(PermissionPublish) || !s.Has(PermissionCreate) {
		t.Errorf("set missing expected permissions: %v", s.List())
	}
	if s.Has(PermissionManage) {
		t.Errorf("set should not contain manage")
	}
	list := s.List()
	if len(list) != 2 || list[0] != PermissionCreate || list[1] != PermissionPublish {
		t.Errorf("List() = %v, want sorted [create publish]", list)
	}

	var empty PermissionSet
	if empty.Has(PermissionCreate) {
		t.Errorf("nil set should carry nothing")
	}
}

func TestPermissionTableRoles(t *testing.T) {
	roles := DefaultPermissions().Roles()
	want := []Role{RoleAdmin, RoleEditor, RolePublisher, RoleWriter}
	if len(roles) != len(want) {
		t.Fatalf("Roles() = %v", roles)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("Roles()[%d] = %q, want %q", i, roles[i], want[i])
		}
	}
}
