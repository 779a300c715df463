package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/target/catalog-console/internal/errors"
	"github.com/target/catalog-console/internal/service"
)

// serviceErrorOpts groups what is needed to answer a failed service call.
type serviceErrorOpts struct {
	Err error
	// Data is re-rendered with an error banner when the failure is not one of
	// the redirecting cases. Nil means there is no page to fall back to.
	Data map[string]any
	// Message overrides the banner text.
	Message string
}

// handleServiceError maps a service failure to a browser response:
//
//   - unauthorized clears the token cookie and sends the browser to login
//   - not_found redirects to the 404 page
//   - canceled requests are dropped quietly
//   - anything else is logged and shown as an inline banner
func (h *UIHandlers) handleServiceError(w http.ResponseWriter, r *http.Request, opts serviceErrorOpts) {
	err := opts.Err
	switch {
	case apperrors.IsUnauthorized(err):
		h.Cookies.clearToken(w, r)
		redirectToLogin(w, r, service.LoginPath)
	case apperrors.IsNotFound(err):
		redirect(w, r, notFoundPath)
	case errors.Is(err, context.Canceled) || apperrors.IsCanceled(err):
		http.Error(w, "request canceled", http.StatusRequestTimeout)
	default:
		h.logger().ErrorContext(r.Context(), "service call failed",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
		if opts.Data == nil {
			h.renderErrorPage(w, r, http.StatusBadGateway, errMsgGeneric)
			return
		}
		markPageError(opts.Data, opts.Message)
		h.renderPage(w, r, opts.Data)
	}
}

// renderErrorPage answers with a standalone error document when there is no
// page to decorate with a banner.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := map[string]any{
		"Title":   errMsgAuthTitle,
		"Status":  status,
		"Message": msg,
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render error page", "error", err, "status", status)
	}
}

func isAuthFailure(err error) bool {
	return apperrors.IsUnauthorized(err)
}
