// Package auth issues and verifies the signed tokens used for sessions,
// refresh, email verification, and password reset, and wraps bcrypt for
// password storage.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vendora/config"
)

// Purpose scopes a token to one use. A token issued for one purpose never
// verifies under another, even when two purposes share a signing key.
type Purpose string

const (
	PurposeSession       Purpose = "session"
	PurposeRefresh       Purpose = "refresh"
	PurposeEmailVerify   Purpose = "email-verification"
	PurposePasswordReset Purpose = "password-reset"
)

var (
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid is returned for malformed tokens, bad signatures,
	// and purpose mismatches.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Claims holds the typed JWT payload.
type Claims struct {
	UserID  string  `json:"_id"`
	Role    string  `json:"role,omitempty"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

func secretFor(p Purpose) []byte {
	switch p {
	case PurposeRefresh:
		return []byte(config.JWTRefreshSecret())
	case PurposeEmailVerify, PurposePasswordReset:
		return []byte(config.EmailTokenSecret())
	default:
		return []byte(config.JWTSecret())
	}
}

func expiryFor(p Purpose) time.Duration {
	switch p {
	case PurposeRefresh:
		return config.JWTRefreshExpiry()
	case PurposeEmailVerify, PurposePasswordReset:
		return config.EmailTokenExpiry()
	default:
		return config.JWTExpiry()
	}
}

// Issue creates a signed token for the given purpose and subject.
// role is only meaningful for session/refresh tokens and may be empty.
func Issue(purpose Purpose, userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryFor(purpose))),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretFor(purpose))
}

// Verify parses and validates a token against the given purpose's key.
// It returns ErrTokenExpired for expired tokens and ErrTokenInvalid for
// everything else, so callers can collapse both into one user-facing message.
func Verify(purpose Purpose, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secretFor(purpose), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
