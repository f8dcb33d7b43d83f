package models

import (
	"testing"

	"vendora/pkg/validate"
)

func TestForgotPasswordEmailMinLength(t *testing.T) {
	errs := validate.Struct(ForgotPasswordInput{Email: "a@b."})
	if errs["email"] != "The email must be at least 5 characters." {
		t.Errorf("email error = %q", errs["email"])
	}

	errs = validate.Struct(ForgotPasswordInput{Email: "jane@example.com"})
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
