package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ubhospitality/inventory-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenPurpose scopes single-use tokens delivered out of band.
type TokenPurpose string

const (
	PurposeEmailVerify   TokenPurpose = "email_verify"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// ActionTokenClaims represents a purpose-scoped token embedded in an
// email link. A token minted for one purpose never validates for another.
type ActionTokenClaims struct {
	UserID  uuid.UUID    `json:"user_id"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}
