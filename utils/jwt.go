package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/serenspace/serenspace/config"
)

// Claims carries the verified identity the external provider embeds in each
// bearer token. The backend trusts UID unconditionally once the signature
// checks out.
type Claims struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for uid. The identity provider mints
// production tokens; this exists for local tooling and tests that share the
// configured secret.
func GenerateToken(uid, displayName string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		UID:         uid,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a bearer token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.UID == "" {
		return nil, errors.New("token missing uid")
	}

	return claims, nil
}
