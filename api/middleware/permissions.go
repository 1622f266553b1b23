package middleware

import (
	"net/http"

	"github.com/parisy/pasarsayur-backend/api/responses"
	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
)

// RequirePermission gates a route group on the declarative policy table.
// It assumes Auth already ran and seeded the actor into the context.
func RequirePermission(perm policy.Permission, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.Role(RoleFromContext(r.Context()))
			subRole := enums.SubRole(SubRoleFromContext(r.Context()))

			if !policy.Allows(perm, role, subRole) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
