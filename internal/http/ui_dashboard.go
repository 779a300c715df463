package httpx

import (
	"context"
	"net/http"
)

// DashboardPage shows the lastly added companies and products with their totals.
func (h *UIHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Home", PageTitle: "Home", Subtitle: "Overview", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			ov, err := h.Dashboard.Overview(ctx)
			if err != nil {
				return err
			}
			data["Companies"] = ov.Companies
			data["Products"] = ov.Products
			return nil
		},
	})
}
