package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "company not found",
			},
			want: "company not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "list companies",
				Cause:   errors.New("connection refused"),
			},
			want: "list companies: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "not found", err: NotFound("gone"), check: IsNotFound},
		{name: "validation", err: ValidationField("email", "Email is not valid"), check: IsValidation},
		{name: "unauthorized", err: Unauthorized("token expired"), check: IsUnauthorized},
		{name: "unavailable", err: Unavailable("backend down"), check: IsUnavailable},
		{name: "internal", err: Internal("boom"), check: IsInternal},
		{name: "wrapped by fmt", err: fmt.Errorf("get company: %w", NotFound("gone")), check: IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "nothing"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := WrapTransport(nil, "nothing"); err != nil {
		t.Errorf("WrapTransport(nil) = %v, want nil", err)
	}
}

func TestWrapTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "canceled", err: context.Canceled, want: ErrCodeCanceled},
		{name: "deadline", err: fmt.Errorf("do: %w", context.DeadlineExceeded), want: ErrCodeTimeout},
		{name: "dial", err: errors.New("dial tcp: connection refused"), want: ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapTransport(tt.err, "call backend")
			if got.Code != tt.want {
				t.Errorf("WrapTransport().Code = %v, want %v", got.Code, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapTransport() lost cause %v", tt.err)
			}
		})
	}
}

func TestGetCodeFieldMessage(t *testing.T) {
	err := fmt.Errorf("create company: %w", ValidationField("website", "Website has an invalid format."))

	if got := GetCode(err); got != ErrCodeValidation {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeValidation)
	}
	if got := GetField(err); got != "website" {
		t.Errorf("GetField() = %q, want website", got)
	}
	if got := GetMessage(err, "fallback"); got != "Website has an invalid format." {
		t.Errorf("GetMessage() = %q", got)
	}
	if got := GetMessage(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("GetMessage(plain) = %q, want fallback", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}
