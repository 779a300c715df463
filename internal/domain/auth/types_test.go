package auth

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
)

func TestUser_DisplayName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := (User{Email: "ada@example.com"}).DisplayName(); got != "ada@example.com" {
		t.Fatalf("expected email fallback, got %q", got)
	}
	if !(User{}).IsZero() {
		t.Fatalf("expected zero user")
	}
}

func TestCredentials_Validate(t *testing.T) {
	if err := (Credentials{Email: "user@test.com", Password: "secret"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Credentials{Email: "not-an-email", Password: ""}.Validate()
	errs, ok := err.(validation.Errors)
	if !ok {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	if _, ok := errs["email"]; !ok {
		t.Fatalf("expected email error, got %v", errs)
	}
	if _, ok := errs["password"]; !ok {
		t.Fatalf("expected password error, got %v", errs)
	}
}

func TestRegistration_ValidateAndUser(t *testing.T) {
	r := Registration{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "pw"}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.User(); got.Email != "ada@example.com" || got.FirstName != "Ada" {
		t.Fatalf("unexpected user %+v", got)
	}

	r.FirstName = ""
	if err := r.Validate(); err == nil {
		t.Fatalf("expected missing first name to fail")
	}
}
