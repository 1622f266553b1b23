package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/parisy/pasarsayur-backend/api/middleware"
	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
)

// actorFromContext rebuilds the authenticated actor from the values
// the auth middleware stored on the request context.
func actorFromContext(ctx context.Context) (policy.Actor, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return policy.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return policy.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid user identity")
	}
	return policy.Actor{
		ID:      id,
		Role:    enums.Role(middleware.RoleFromContext(ctx)),
		SubRole: enums.SubRole(middleware.SubRoleFromContext(ctx)),
	}, nil
}
