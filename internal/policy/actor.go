package policy

import (
	"github.com/google/uuid"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// Actor identifies the authenticated caller for authorization decisions.
type Actor struct {
	ID      uuid.UUID
	Role    enums.Role
	SubRole enums.SubRole
}

// Can reports whether the actor holds the permission.
func (a Actor) Can(perm Permission) bool {
	return Allows(perm, a.Role, a.SubRole)
}

// IsAdminTier reports whether the actor sits in the administrative tier.
func (a Actor) IsAdminTier() bool {
	return IsAdminTier(a.Role, a.SubRole)
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID uuid.UUID) bool {
	return a.ID == userID
}
