package auth

import (
	"github.com/parisy/pasarsayur-backend/internal/users"
)

// RegisterInput holds the validated payload for account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  *string
	Phone    *string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned on successful login.
type AuthResult struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// TokenPair is returned on refresh rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
