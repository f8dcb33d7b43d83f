package validate_test

import (
	"testing"

	"vendora/pkg/validate"
)

type signupInput struct {
	Name     string `json:"name"     validate:"required,min=1,max=255"`
	Email    string `json:"email"    validate:"required,min=1,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
	Gender   string `json:"gender"   validate:"nullable,in=Male,Female,Other"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "secret123",
		Gender:   "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"numeric,min=0,max=100000"`
	}
	if errs := validate.Struct(in{Price: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 25}); validate.HasErrors(errs) {
		t.Errorf("expected price 25 to pass, got: %v", errs)
	}
}

func TestInRuleFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=customer,admin,moderator,max=20"`
	}
	if errs := validate.Struct(in{Role: "superadmin"}); !validate.HasErrors(errs) {
		t.Error("expected invalid role to fail")
	}
	if errs := validate.Struct(in{Role: "admin"}); validate.HasErrors(errs) {
		t.Errorf("expected admin to pass: %v", errs)
	}
}

func TestObjectIDRule(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,objectid"`
	}
	if errs := validate.Struct(in{Category: "not-hex"}); !validate.HasErrors(errs) {
		t.Error("expected malformed object id to fail")
	}
	if errs := validate.Struct(in{Category: "64f1c2d3e4a5b6c7d8e9f0a1"}); validate.HasErrors(errs) {
		t.Errorf("expected 24-char hex id to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,min=5,max=20"`
	}
	// Empty string is nullable, remaining rules are skipped
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but too short must fail
	if errs := validate.Struct(in{Phone: "123"}); !validate.HasErrors(errs) {
		t.Error("expected too-short phone to fail")
	}
}

func TestRequiredPointerAllowsZero(t *testing.T) {
	type in struct {
		Price *float64 `json:"price" validate:"required,min=0"`
	}
	zero := 0.0
	if errs := validate.Struct(in{Price: &zero}); validate.HasErrors(errs) {
		t.Errorf("expected pointer to zero to satisfy required, got: %v", errs)
	}
	if errs := validate.Struct(in{}); !validate.HasErrors(errs) {
		t.Error("expected nil pointer to fail required")
	}
}

func TestLtFieldRule(t *testing.T) {
	type in struct {
		Price    *float64 `json:"price"         validate:"required,min=0"`
		Discount *float64 `json:"discountPrice" validate:"nullable,min=0,lt_field=price"`
	}
	price := 100.0
	low := 50.0
	high := 100.0

	if errs := validate.Struct(in{Price: &price, Discount: &low}); validate.HasErrors(errs) {
		t.Errorf("expected discount below price to pass: %v", errs)
	}
	if errs := validate.Struct(in{Price: &price, Discount: &high}); !validate.HasErrors(errs) {
		t.Error("expected discount equal to price to fail")
	}
	// Absent discount is fine.
	if errs := validate.Struct(in{Price: &price}); validate.HasErrors(errs) {
		t.Errorf("expected absent discount to pass: %v", errs)
	}
}

func TestEachRules(t *testing.T) {
	type in struct {
		Tags []string `json:"tags" validate:"required,each_min=1,each_max=5"`
	}
	if errs := validate.Struct(in{Tags: []string{"ok", ""}}); !validate.HasErrors(errs) {
		t.Error("expected empty tag to fail each_min")
	}
	if errs := validate.Struct(in{Tags: []string{"toolongtag"}}); !validate.HasErrors(errs) {
		t.Error("expected long tag to fail each_max")
	}
	if errs := validate.Struct(in{Tags: []string{"a", "bb"}}); validate.HasErrors(errs) {
		t.Errorf("expected tags to pass: %v", errs)
	}
}

func TestNestedStructErrorsAreDotted(t *testing.T) {
	type address struct {
		FirstName string `json:"firstName" validate:"required"`
		Email     string `json:"email"     validate:"required,email"`
	}
	type in struct {
		Payment         string  `json:"payment" validate:"required"`
		ShippingAddress address `json:"shippingAddress"`
	}

	errs := validate.Struct(in{Payment: "card", ShippingAddress: address{Email: "bad"}})
	if _, ok := errs["shippingAddress.firstName"]; !ok {
		t.Errorf("expected nested firstName error, got: %v", errs)
	}
	if _, ok := errs["shippingAddress.email"]; !ok {
		t.Errorf("expected nested email error, got: %v", errs)
	}
}

func TestFirstReturnsAMessage(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if validate.First(errs) == "" {
		t.Error("expected First to return one of the messages")
	}
	if validate.First(map[string]string{}) != "" {
		t.Error("expected First of empty map to be empty")
	}
}
