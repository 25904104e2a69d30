package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/connectk/backend/internal/config"
)

// Claims identify one anonymous browser. There are no user accounts: the
// identity exists only to map a browser to its single live game.
type Claims struct {
	IdentityID string `json:"identity_id"`
	jwt.RegisteredClaims
}

// GenerateIdentityToken creates a signed token for a browser identity.
func GenerateIdentityToken(identityID string) (string, error) {
	secret := config.AppConfig.JWTSecret
	ttl := time.Duration(config.AppConfig.IdentityTTLHours) * time.Hour

	claims := &Claims{
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateIdentityToken validates a token and returns its claims.
func ValidateIdentityToken(tokenString string) (*Claims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
