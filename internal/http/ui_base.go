package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"strconv"

	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/domain/catalog"
	"github.com/target/catalog-console/internal/http/ui/viewmodel"
	"github.com/target/catalog-console/internal/service"
)

// AuthService is the part of the session provider the auth screens drive.
type AuthService interface {
	Login(ctx context.Context, email, password string) service.Session
	Register(ctx context.Context, reg domainauth.Registration) service.Session
	Logout(ctx context.Context) service.LogoutResult
}

// CompaniesService is a minimal interface for UI needs.
type CompaniesService interface {
	List(ctx context.Context, q catalog.ListQuery) (catalog.CompanyPage, error)
	Get(ctx context.Context, id int64) (catalog.Company, error)
	Create(ctx context.Context, in catalog.CompanyInput) (int64, error)
	Update(ctx context.Context, id int64, in catalog.CompanyInput) error
	Delete(ctx context.Context, id int64) (catalog.DeleteResult, error)
}

// ProductsService is a minimal interface for UI needs.
type ProductsService interface {
	List(ctx context.Context, q catalog.ListQuery) (catalog.ProductPage, error)
	Get(ctx context.Context, id int64) (catalog.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (int64, error)
	Update(ctx context.Context, id int64, in catalog.ProductInput) error
	Delete(ctx context.Context, id int64) (catalog.DeleteResult, error)
	FormOptions(ctx context.Context) (catalog.ProductFormOptions, error)
}

// OverviewService loads the dashboard tables.
type OverviewService interface {
	Overview(ctx context.Context) (service.Overview, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthService      = (*service.SessionService)(nil)
	_ CompaniesService = (*service.CompanyService)(nil)
	_ ProductsService  = (*service.ProductService)(nil)
	_ OverviewService  = (*service.DashboardService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Auth      AuthService
	Companies CompaniesService
	Products  ProductsService
	Dashboard OverviewService
	Cookies   CookieConfig
	PageSize  int  // backend rows per page, used for the pager totals
	IsDev     bool // Development mode flag for enhanced error reporting
	Logger    *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) pageSize() int {
	if h.PageSize <= 0 {
		return 10
	}
	return h.PageSize
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	Subtitle    string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
// Rendering a layout consumes the pending flash notices.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Notices:     popNotices(r),
	}

	if user, ok := CurrentUser(r.Context()); ok {
		layout.User = &viewmodel.User{Name: user.DisplayName(), Email: user.Email}
		layout.IsAuthenticated = true
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"Subtitle":        meta.Subtitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Notices":         layout.Notices,
		"Errors":          map[string]string{},
		"Values":          map[string]string{},
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// Fetch failures go through the shared service error mapping.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.handleServiceError(w, r, serviceErrorOpts{Err: err, Data: data})
			return
		}
	}
	h.renderPage(w, r, data)
}

// renderPage renders a page with HTMX partial support. Partial responses carry
// the document title, the header and the notices as out-of-band swaps.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	page, _ := data["CurrentPage"].(string)

	if _, err := w.Write([]byte(`<title>` + html.EscapeString(title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}
	if err := h.T.executeTo(w, "notices-oob", data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial notices render")
		return
	}
	if err := h.T.executeTo(w, ContentTemplateFor(page), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

func markPageError(data map[string]any, msg string) {
	data["Error"] = true
	if msg == "" {
		msg = errMsgGeneric
	}
	data["ErrorMessage"] = msg
}

// pathID parses the numeric {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
