package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates the JWT pair used by the HTTP layer.
type TokenService interface {
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
	GetRefreshTokenDuration() time.Duration
}
