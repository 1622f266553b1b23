package enums

import "fmt"

// SubRole is the community-hierarchy tier attached to an account.
type SubRole string

const (
	SubRoleAdmin      SubRole = "admin"
	SubRoleSekretaris SubRole = "sekretaris"
	SubRoleBendahara  SubRole = "bendahara"
	SubRoleRW         SubRole = "rw"
	SubRoleRT         SubRole = "rt"
	SubRoleWarga      SubRole = "warga"
)

var validSubRoles = []SubRole{
	SubRoleAdmin,
	SubRoleSekretaris,
	SubRoleBendahara,
	SubRoleRW,
	SubRoleRT,
	SubRoleWarga,
}

// String implements fmt.Stringer.
func (s SubRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubRole.
func (s SubRole) IsValid() bool {
	for _, candidate := range validSubRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubRole converts raw input into a SubRole.
func ParseSubRole(value string) (SubRole, error) {
	for _, candidate := range validSubRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sub role %q", value)
}
