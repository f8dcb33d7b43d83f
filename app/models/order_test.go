package models

import (
	"strings"
	"testing"
)

func TestNewTransactionIDShape(t *testing.T) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		if len(id) != 8 {
			t.Fatalf("len(%q) = %d, want 8", id, len(id))
		}
		for _, ch := range id {
			if !strings.ContainsRune(charset, ch) {
				t.Fatalf("id %q contains %q outside the charset", id, ch)
			}
		}
	}
}

func TestNewTransactionIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewTransactionID()] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected varied ids, got %d distinct of 50", len(seen))
	}
}
