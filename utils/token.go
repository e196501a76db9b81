package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// RequireJWTSecret aborts startup when no signing secret is configured.
// There is deliberately no built-in fallback secret.
func RequireJWTSecret() {
	if os.Getenv("JWT_SECRET") == "" {
		panic("JWT_SECRET environment variable is not set")
	}
}

// TokenClaims is what goes into every issued token.
type TokenClaims struct {
	UserID      string
	Role        string
	IsFreeTrial bool
}

// GenerateToken signs a JWT for the given principal. Free trial users are
// issued role "resident" with the is_free_trial flag so they can use the
// resident surface during their trial.
func GenerateToken(claims TokenClaims) (string, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       claims.UserID,
		"role":          claims.Role,
		"is_free_trial": claims.IsFreeTrial,
		"exp":           time.Now().Add(time.Hour * 72).Unix(), // Token expires in 72 hours
	})

	return token.SignedString([]byte(secretStr))
}
