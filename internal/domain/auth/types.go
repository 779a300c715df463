package auth

// Package auth contains domain-level types for authentication against the
// catalog backend. It is free of transport and framework concerns.

import (
	"errors"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation"
)

// User is the identity returned by the backend for a verified token.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DisplayName joins first and last name, falling back to the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// IsZero reports whether the backend returned no identifying fields.
func (u User) IsZero() bool {
	return u.FirstName == "" && u.LastName == "" && u.Email == ""
}

// Credentials is the login payload sent to /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload before it leaves the console.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, validation.By(emailRule)),
		validation.Field(&c.Password, validation.Required),
	)
}

// Registration is the payload sent to /auth/register.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate checks the payload before it leaves the console.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.By(emailRule)),
		validation.Field(&r.Password, validation.Required),
	)
}

// User returns the identity described by the registration.
func (r Registration) User() User {
	return User{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

var errInvalidEmail = errors.New("must be a valid email address")

// emailRule checks the local@domain.tld shape without any DNS lookups.
func emailRule(value any) error {
	s, _ := value.(string)
	if s == "" || govalidator.IsEmail(s) {
		return nil
	}
	return errInvalidEmail
}
