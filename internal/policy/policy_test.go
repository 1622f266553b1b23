package policy

import (
	"testing"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

func TestAllows(t *testing.T) {
	cases := []struct {
		name    string
		perm    Permission
		role    enums.Role
		subRole enums.SubRole
		want    bool
	}{
		{name: "platform admin manages catalog", perm: PermCatalogManage, role: enums.RoleAdmin, subRole: enums.SubRoleAdmin, want: true},
		{name: "community admin manages catalog", perm: PermCatalogManage, role: enums.RoleUser, subRole: enums.SubRoleAdmin, want: true},
		{name: "warga cannot manage catalog", perm: PermCatalogManage, role: enums.RoleUser, subRole: enums.SubRoleWarga, want: false},
		{name: "bendahara manages inventory", perm: PermInventoryManage, role: enums.RoleUser, subRole: enums.SubRoleBendahara, want: true},
		{name: "platform admin without inventory sub-role is denied", perm: PermInventoryManage, role: enums.RoleAdmin, subRole: enums.SubRoleSekretaris, want: false},
		{name: "bendahara reads finance", perm: PermFinanceRead, role: enums.RoleUser, subRole: enums.SubRoleBendahara, want: true},
		{name: "sekretaris cannot read finance", perm: PermFinanceRead, role: enums.RoleUser, subRole: enums.SubRoleSekretaris, want: false},
		{name: "rw lists accounts", perm: PermAccountsList, role: enums.RoleUser, subRole: enums.SubRoleRW, want: true},
		{name: "rt lists accounts", perm: PermAccountsList, role: enums.RoleUser, subRole: enums.SubRoleRT, want: true},
		{name: "warga cannot list accounts", perm: PermAccountsList, role: enums.RoleUser, subRole: enums.SubRoleWarga, want: false},
		{name: "community admin administers transactions", perm: PermTransactionsAdmin, role: enums.RoleUser, subRole: enums.SubRoleAdmin, want: true},
		{name: "rt cannot administer transactions", perm: PermTransactionsAdmin, role: enums.RoleUser, subRole: enums.SubRoleRT, want: false},
		{name: "unknown permission denies", perm: Permission("bogus"), role: enums.RoleAdmin, subRole: enums.SubRoleAdmin, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allows(tc.perm, tc.role, tc.subRole); got != tc.want {
				t.Fatalf("Allows(%s, %s, %s) = %v, want %v", tc.perm, tc.role, tc.subRole, got, tc.want)
			}
		})
	}
}

func TestIsAdminTier(t *testing.T) {
	if !IsAdminTier(enums.RoleAdmin, enums.SubRoleWarga) {
		t.Fatal("platform admin should be admin tier")
	}
	if !IsAdminTier(enums.RoleUser, enums.SubRoleAdmin) {
		t.Fatal("community admin should be admin tier")
	}
	if IsAdminTier(enums.RoleUser, enums.SubRoleRW) {
		t.Fatal("rw should not be admin tier")
	}
}
