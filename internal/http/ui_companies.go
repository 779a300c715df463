package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/target/catalog-console/internal/domain/catalog"
	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/http/validation"
)

const companiesPath = "/company"

// CompaniesList renders the searchable company table.
func (h *UIHandlers) CompaniesList(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[catalog.Company]{
		Handler: h,
		W:       w,
		R:       r,
		Fetch: func(ctx context.Context, q catalog.ListQuery) ([]catalog.Company, int, error) {
			page, err := h.Companies.List(ctx, q)
			return page.Companies, page.Total, err
		},
		BasePath: companiesPath,
		PageMeta: PageMeta{Title: "Companies", PageTitle: "Companies", Subtitle: "Manage Companies", CurrentPage: PageCompanies},
		ItemsKey: "Companies",
	})
}

// CompanyAdd renders an empty company form.
func (h *UIHandlers) CompanyAdd(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, companyMeta(FormModeCreate)).
		WithValues(map[string]string{"country": catalog.DefaultCountry}).
		With("Mode", string(FormModeCreate)).
		With("Form", validation.FormCompany).
		With("Countries", catalog.Countries).
		Build()
	h.renderPage(w, r, data)
}

// CompanyEdit loads a company into the form. A failed load goes to /404.
func (h *UIHandlers) CompanyEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		redirect(w, r, notFoundPath)
		return
	}
	c, err := h.Companies.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, serviceErrorOpts{Err: err})
		return
	}
	in := c.Input()
	data := NewTemplateData(r, companyMeta(FormModeEdit)).
		WithValues(map[string]string{
			"name":        in.Name,
			"legalNumber": in.LegalNumber,
			"country":     in.Country,
			"website":     in.Website,
		}).
		With("ID", id).
		With("Mode", string(FormModeEdit)).
		With("Form", validation.FormCompany).
		With("Countries", catalog.Countries).
		Build()
	h.renderPage(w, r, data)
}

// CompanyCreate handles POST /company.
func (h *UIHandlers) CompanyCreate(w http.ResponseWriter, r *http.Request) {
	h.companyForm(w, r, FormModeCreate)
}

// CompanyUpdate handles POST /company/{id}.
func (h *UIHandlers) CompanyUpdate(w http.ResponseWriter, r *http.Request) {
	h.companyForm(w, r, FormModeEdit)
}

func (h *UIHandlers) companyForm(w http.ResponseWriter, r *http.Request, mode FormMode) {
	extra := map[string]any{"Countries": catalog.Countries}
	if id, ok := pathID(r); ok {
		extra["ID"] = id
	}
	HandleForm(FormHandlerOpts[catalog.CompanyInput]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Schema:  validation.CompanySchema(),
		Decode: func(v map[string]string) (catalog.CompanyInput, map[string]string) {
			return catalog.CompanyInput{
				Name:        v["name"],
				LegalNumber: v["legalNumber"],
				Country:     v["country"],
				Website:     v["website"],
			}, nil
		},
		Service:    h.Companies,
		Renderer:   h.renderPage,
		SuccessURL: func(id int64) string { return companiesPath + "/" + strconv.FormatInt(id, 10) },
		PageMeta:   companyMeta(mode),
		ExtraData:  extra,
	})
}

// CompanyDelete removes a company and, on the backend, its products.
func (h *UIHandlers) CompanyDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteOpts{
		Delete:   h.Companies.Delete,
		Success:  msgCompanyDeleted,
		Redirect: companiesPath,
	})
}

func companyMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit Company", PageTitle: "Companies", Subtitle: "Edit Company", CurrentPage: PageCompanyForm}
	}
	return PageMeta{Title: "Add Company", PageTitle: "Companies", Subtitle: "Add Company", CurrentPage: PageCompanyForm}
}

// deleteOpts encapsulates common delete-handling behavior for UI endpoints.
type deleteOpts struct {
	Delete   func(ctx context.Context, id int64) (catalog.DeleteResult, error)
	Success  string
	Redirect string
}

// handleDelete runs a delete and reports the outcome as a flash notice on the
// list page. Zero affected rows and backend failures share one message.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteOpts) {
	id, ok := pathID(r)
	if !ok {
		redirect(w, r, notFoundPath)
		return
	}

	res, err := opts.Delete(r.Context(), id)
	switch {
	case err == nil && res.Affected > 0:
		pushNotice(r, notice.Info(opts.Success, ""))
	case err != nil && isAuthFailure(err):
		h.handleServiceError(w, r, serviceErrorOpts{Err: err})
		return
	default:
		if err != nil {
			h.logger().WarnContext(r.Context(), "delete failed", "id", id, "path", r.URL.Path, "error", err)
		}
		pushNotice(r, notice.Error(errMsgGeneric))
	}
	redirect(w, r, opts.Redirect)
}
