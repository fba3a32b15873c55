package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// SessionClaims binds a signed token to a server-side session. The token
// alone is not enough to authenticate: the named session must still exist
// in the session store.
type SessionClaims struct {
	UserID               uint   `json:"user_id"`    // Custom claim for user ID
	SessionID            string `json:"session_id"` // Server-side session this token names
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateSessionToken creates a signed token naming a session
func GenerateSessionToken(userID uint, sessionID, secret string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Matches the session store TTL
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken parses and validates a session token string
func ParseSessionToken(tokenStr, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
