package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/target/catalog-console/internal/domain/notice"
	apperrors "github.com/target/catalog-console/internal/errors"
	"github.com/target/catalog-console/internal/http/validation"
)

// FormService defines the interface for services that support Create and Update operations.
type FormService[T any] interface {
	Create(ctx context.Context, in T) (int64, error)
	Update(ctx context.Context, id int64, in T) error
}

// FormDecoder turns validated raw values into the service payload. It may
// still report field errors the schema cannot see, such as integer overflow.
type FormDecoder[T any] func(values map[string]string) (T, map[string]string)

// FormRenderer is a function that renders the form template with the given data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	Handler  *UIHandlers
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Schema   validation.Schema
	Decode   FormDecoder[T]
	Service  FormService[T]
	Renderer FormRenderer
	// SuccessURL returns where to go after a successful save.
	SuccessURL func(id int64) string
	PageMeta   PageMeta
	// Optional: additional data to pass to template on error
	ExtraData map[string]any
}

// HandleForm processes Create and Update submissions. Values are checked
// against the same schema the live validation endpoint uses; a failing check
// or a backend rejection re-renders the form with the submitted values.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Handler == nil || opts.Decode == nil || opts.Service == nil || opts.Renderer == nil || opts.SuccessURL == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	var id int64
	if opts.Mode == FormModeEdit {
		var ok bool
		if id, ok = pathID(opts.R); !ok {
			redirect(opts.W, opts.R, notFoundPath)
			return
		}
	}

	values := formValues(opts.R, opts.Schema.Names())
	if inv, bad := opts.Schema.Check(values).(validation.Invalid); bad {
		opts.renderFormError(values, inv.Errors, "")
		return
	}
	payload, fieldErrors := opts.Decode(values)
	if len(fieldErrors) > 0 {
		opts.renderFormError(values, fieldErrors, "")
		return
	}

	id, err := opts.execute(id, payload)
	if err != nil {
		opts.handleServiceError(values, err)
		return
	}

	if opts.Mode == FormModeEdit {
		pushNotice(opts.R, notice.Success(msgUpdated))
	}
	redirect(opts.W, opts.R, opts.SuccessURL(id))
}

// execute runs the create or update call and returns the id of the saved record.
func (fh FormHandlerOpts[T]) execute(id int64, payload T) (int64, error) {
	ctx := fh.R.Context()
	if fh.Mode == FormModeEdit {
		return id, fh.Service.Update(ctx, id, payload)
	}
	return fh.Service.Create(ctx, payload)
}

func (fh FormHandlerOpts[T]) handleServiceError(values map[string]string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		http.Error(fh.W, "request canceled", http.StatusRequestTimeout)
		return
	}
	if apperrors.IsValidation(err) {
		msg := apperrors.GetMessage(err, errMsgGeneric)
		if field := apperrors.GetField(err); field != "" {
			fh.renderFormError(values, map[string]string{field: msg}, "")
			return
		}
		fh.renderFormError(values, nil, msg)
		return
	}

	data := fh.formData(values, nil)
	fh.Handler.handleServiceError(fh.W, fh.R, serviceErrorOpts{Err: err, Data: data})
}

// renderFormError renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(values, fieldErrors map[string]string, generalError string) {
	data := fh.formData(values, fieldErrors)
	switch {
	case generalError != "":
		markPageError(data, generalError)
	case len(fieldErrors) > 0:
		markPageError(data, errMsgFixBelow)
	}
	fh.Renderer(fh.W, fh.R, data)
}

func (fh FormHandlerOpts[T]) formData(values, fieldErrors map[string]string) map[string]any {
	b := NewTemplateData(fh.R, fh.PageMeta).
		WithValues(values).
		WithFieldErrors(fieldErrors).
		With("Mode", string(fh.Mode)).
		With("Form", fh.Schema.Form)
	for k, v := range fh.ExtraData {
		b.With(k, v)
	}
	return b.Build()
}

// formValues collects the trimmed posted values for the given fields.
func formValues(r *http.Request, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = strings.TrimSpace(r.PostFormValue(f))
	}
	return out
}
