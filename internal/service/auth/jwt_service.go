package auth

import (
	"context"
	"time"
)

// TokenTypeTrigger marks tokens allowed to call the invocation endpoints.
const TokenTypeTrigger = "trigger"

// MinSecretLength is the minimum length of the HMAC signing secret.
const MinSecretLength = 32

// JWTService defines operations for managing trigger tokens.
type JWTService interface {
	// GenerateToken creates a signed token for subject, usually the name of
	// the external scheduler calling the trigger endpoint.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a trigger token.
type Claims struct {
	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
