package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vendora/config"
	"vendora/pkg/auth"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := auth.Issue(auth.PurposeSession, "64f1c2d3e4a5b6c7d8e9f0a1", "customer")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := auth.Verify(auth.PurposeSession, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "64f1c2d3e4a5b6c7d8e9f0a1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != "customer" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestVerifyRejectsCrossPurpose(t *testing.T) {
	// Session and email tokens share the default signing key, so the purpose
	// claim is the only thing separating them.
	token, err := auth.Issue(auth.PurposeSession, "64f1c2d3e4a5b6c7d8e9f0a1", "customer")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := auth.Verify(auth.PurposeEmailVerify, token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("session token verified as email token: err = %v", err)
	}
	if _, err := auth.Verify(auth.PurposePasswordReset, token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("session token verified as reset token: err = %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := auth.Verify(auth.PurposeSession, "not.a.token"); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	claims := auth.Claims{
		UserID:  "64f1c2d3e4a5b6c7d8e9f0a1",
		Purpose: auth.PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.EmailTokenSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Verify(auth.PurposePasswordReset, token); !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	claims := auth.Claims{
		UserID:  "64f1c2d3e4a5b6c7d8e9f0a1",
		Purpose: auth.PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.Verify(auth.PurposeSession, token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
