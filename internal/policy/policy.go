package policy

import (
	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// Permission names a gated operation group.
type Permission string

const (
	// PermCatalogManage covers describing vegetables: add, update, delete.
	PermCatalogManage Permission = "catalog.manage"
	// PermCatalogAdminList covers the listing that includes unavailable items.
	PermCatalogAdminList Permission = "catalog.admin_list"
	// PermInventoryManage covers stock and availability updates.
	PermInventoryManage Permission = "catalog.inventory"
	// PermFinanceRead covers the finance summary and history.
	PermFinanceRead Permission = "finance.read"
	// PermAccountsList covers the scoped account listing.
	PermAccountsList Permission = "accounts.list"
	// PermAccountsDelete covers removing accounts.
	PermAccountsDelete Permission = "accounts.delete"
	// PermTransactionsAdmin covers listing, updating, and deleting any transaction.
	PermTransactionsAdmin Permission = "transactions.admin"
)

// Rule grants a permission when the actor's role OR sub-role matches.
type Rule struct {
	Roles    []enums.Role
	SubRoles []enums.SubRole
}

// The single source of endpoint authorization. Handlers must not re-implement
// role checks; scoping beyond allow/deny (e.g. which accounts a lister sees)
// lives in the owning service.
var rules = map[Permission]Rule{
	PermCatalogManage:     {Roles: []enums.Role{enums.RoleAdmin}, SubRoles: []enums.SubRole{enums.SubRoleAdmin}},
	PermCatalogAdminList:  {Roles: []enums.Role{enums.RoleAdmin}, SubRoles: []enums.SubRole{enums.SubRoleAdmin}},
	PermInventoryManage:   {SubRoles: []enums.SubRole{enums.SubRoleAdmin, enums.SubRoleBendahara}},
	PermFinanceRead:       {SubRoles: []enums.SubRole{enums.SubRoleAdmin, enums.SubRoleBendahara}},
	PermAccountsList:      {Roles: []enums.Role{enums.RoleAdmin}, SubRoles: []enums.SubRole{enums.SubRoleAdmin, enums.SubRoleRW, enums.SubRoleRT}},
	PermAccountsDelete:    {Roles: []enums.Role{enums.RoleAdmin}, SubRoles: []enums.SubRole{enums.SubRoleAdmin}},
	PermTransactionsAdmin: {Roles: []enums.Role{enums.RoleAdmin}, SubRoles: []enums.SubRole{enums.SubRoleAdmin}},
}

// Allows reports whether the role/sub-role pair satisfies the permission.
// Unknown permissions always deny.
func Allows(perm Permission, role enums.Role, subRole enums.SubRole) bool {
	rule, ok := rules[perm]
	if !ok {
		return false
	}
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}
	for _, s := range rule.SubRoles {
		if s == subRole {
			return true
		}
	}
	return false
}

// IsAdminTier reports whether the actor sits in the administrative tier
// (platform role admin or community sub-role admin).
func IsAdminTier(role enums.Role, subRole enums.SubRole) bool {
	return role == enums.RoleAdmin || subRole == enums.SubRoleAdmin
}
