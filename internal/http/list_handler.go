package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/target/catalog-console/internal/domain/catalog"
	"github.com/target/catalog-console/internal/http/ui/viewmodel"
)

// ListFetcher loads one page of items plus the backend page total.
type ListFetcher[T any] func(ctx context.Context, q catalog.ListQuery) ([]T, int, error)

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Fetch   ListFetcher[T]
	// BasePath is the base URL path for pager links (e.g., "/company")
	BasePath string
	PageMeta PageMeta
	// ItemsKey is the template data key for the items (e.g., "Companies")
	ItemsKey string
}

// HandleList renders a searchable, ordered, paginated list. Search and order
// travel as query parameters so pager links and browser history keep them.
//
//	HandleList(ListHandlerOpts[catalog.Company]{
//	    Handler: h, W: w, R: r,
//	    Fetch: func(ctx context.Context, q catalog.ListQuery) ([]catalog.Company, int, error) {
//	        page, err := h.Companies.List(ctx, q)
//	        return page.Companies, page.Total, err
//	    },
//	    BasePath: "/company",
//	    PageMeta: PageMeta{Title: "Companies", CurrentPage: PageCompanies},
//	    ItemsKey: "Companies",
//	})
func HandleList[T any](opts ListHandlerOpts[T]) {
	if opts.Handler == nil || opts.Fetch == nil {
		http.Error(opts.W, "misconfigured list handler", http.StatusInternalServerError)
		return
	}

	q := parseListQuery(opts.R.URL.Query())
	data := NewTemplateData(opts.R, opts.PageMeta).
		With("Query", q).
		With(opts.ItemsKey, []T{}).
		Build()

	items, total, err := opts.Fetch(opts.R.Context(), q)
	if err != nil {
		opts.Handler.handleServiceError(opts.W, opts.R, serviceErrorOpts{Err: err, Data: data})
		return
	}
	if items == nil {
		items = []T{}
	}
	data[opts.ItemsKey] = items
	data["Pagination"] = buildPagination(opts.BasePath, q, total, opts.Handler.pageSize())

	opts.Handler.renderPage(opts.W, opts.R, data)
}

// parseListQuery reads page, name and order, tolerating missing or invalid values.
func parseListQuery(v url.Values) catalog.ListQuery {
	page, err := strconv.Atoi(v.Get("page"))
	if err != nil {
		page = 1
	}
	return catalog.ListQuery{
		Page:  page,
		Name:  v.Get("name"),
		Order: catalog.Order(v.Get("order")),
	}.Normalize()
}

// buildPagination derives the pager from the backend total. The backend
// reports the number of pages, so the record count is total × pageSize.
func buildPagination(basePath string, q catalog.ListQuery, totalPages, pageSize int) viewmodel.Pagination {
	if totalPages < 0 {
		totalPages = 0
	}
	p := viewmodel.Pagination{
		Page:       q.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: totalPages * pageSize,
		HasPrev:    q.Page > 1,
		HasNext:    q.Page < totalPages,
	}
	if p.HasPrev {
		p.PrevURL = pageURL(basePath, q, q.Page-1)
	}
	if p.HasNext {
		p.NextURL = pageURL(basePath, q, q.Page+1)
	}
	return p
}

// pageURL keeps name and order while moving to page.
func pageURL(basePath string, q catalog.ListQuery, page int) string {
	q.Page = page
	return basePath + "?" + q.Values().Encode()
}
