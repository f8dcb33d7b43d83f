package auth_test

import (
	"testing"

	"vendora/pkg/auth"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !auth.CheckPassword(hash, "secret123") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordRejectsBadHash(t *testing.T) {
	if auth.CheckPassword("not-a-bcrypt-hash", "secret123") {
		t.Error("malformed hash accepted")
	}
}
