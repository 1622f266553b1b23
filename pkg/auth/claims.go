package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	Role    enums.Role
	SubRole enums.SubRole
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID  uuid.UUID     `json:"user_id"`
	Role    enums.Role    `json:"role"`
	SubRole enums.SubRole `json:"sub_role"`
	jwt.RegisteredClaims
}
