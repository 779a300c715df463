package httpx

import (
	"net/http"
)

//nolint:gochecknoglobals // static page metadata
var notFoundMeta = PageMeta{Title: "Page Not Found", PageTitle: "Not Found", CurrentPage: PageNotFound}

// NotFound renders the not-found page with a 404 status for unmatched routes.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if h.T == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	data := basePageData(r, notFoundMeta)
	data["Path"] = r.URL.Path
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	h.renderPage(w, r, data)
}

// NotFoundPage serves GET /404, the target of redirects for records that failed to load.
func (h *UIHandlers) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, basePageData(r, notFoundMeta))
}
