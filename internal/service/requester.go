package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/target/catalog-console/internal/apiclient"
	apperrors "github.com/target/catalog-console/internal/errors"
)

// Requester is the backend round trip every service depends on.
// *apiclient.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, req apiclient.Request) (*apiclient.Response, error)
}

var _ Requester = (*apiclient.Client)(nil)

// expect performs req and decodes the payload when the backend answers with want.
// Any other status is classified into an AppError carrying the backend message.
func expect[T any](ctx context.Context, api Requester, req apiclient.Request, want int, op string) (T, error) {
	var zero T
	res, err := apiclient.Fetch[T](ctx, api, req)
	if err != nil {
		return zero, apperrors.WrapTransport(err, op)
	}
	if res.StatusCode != want {
		return zero, statusError(op, res.StatusCode, res.Message)
	}
	return res.Data, nil
}

// expectCollection is expect for listing endpoints. Only a record lookup can be
// "not found"; a 404 on a collection is reported as the backend being unavailable.
func expectCollection[T any](ctx context.Context, api Requester, req apiclient.Request, op string) (T, error) {
	v, err := expect[T](ctx, api, req, http.StatusOK, op)
	if apperrors.IsNotFound(err) {
		return v, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, fallbackMessage)
	}
	return v, err
}

func statusError(op string, status int, msg string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "Your session has expired."
		}
		return apperrors.Unauthorized(msg)
	case http.StatusNotFound:
		if msg == "" {
			msg = "Not found."
		}
		return apperrors.NotFound(msg)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "The request was rejected."
		}
		return apperrors.Validation(msg)
	default:
		cause := fmt.Errorf("%s: unexpected status %d", op, status)
		if msg == "" {
			msg = fallbackMessage
		}
		return apperrors.Wrap(cause, apperrors.ErrCodeUnavailable, msg)
	}
}

// validationError converts an ozzo-validation result into a field-scoped AppError.
// The alphabetically first field wins so the outcome is deterministic.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]
	return apperrors.ValidationField(first, fmt.Sprintf("%s %v", first, fieldErrs[first]))
}
