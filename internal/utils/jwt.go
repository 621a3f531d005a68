package utils

import (
	"errors" // Error values
	"time"   // Issue timestamp

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidSession is returned for cookies that do not carry a usable identity
var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the payload of the identity cookie
type SessionClaims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// GenerateSessionToken creates a signed identity token for a user ID.
// The token carries no expiry; the cookie holding it lives for the browser session.
func GenerateSessionToken(userID uint, secret string) (string, error) {
	claims := SessionClaims{
		UserID: userID, // Custom claim for user ID
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()), // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseSessionToken validates a token string and returns the user ID it names
func ParseSessionToken(tokenStr, secret string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return 0, ErrInvalidSession
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.UserID != 0 {
		return claims.UserID, nil
	}
	return 0, ErrInvalidSession
}
