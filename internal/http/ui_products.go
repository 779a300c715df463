package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/target/catalog-console/internal/domain/catalog"
	"github.com/target/catalog-console/internal/http/validation"
)

const productsPath = "/product"

// ProductsList renders the searchable product table.
func (h *UIHandlers) ProductsList(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[catalog.Product]{
		Handler: h,
		W:       w,
		R:       r,
		Fetch: func(ctx context.Context, q catalog.ListQuery) ([]catalog.Product, int, error) {
			page, err := h.Products.List(ctx, q)
			return page.Products, page.Total, err
		},
		BasePath: productsPath,
		PageMeta: PageMeta{Title: "Products", PageTitle: "Products", Subtitle: "Manage Products", CurrentPage: PageProducts},
		ItemsKey: "Products",
	})
}

// ProductAdd renders an empty product form with the category and company options.
func (h *UIHandlers) ProductAdd(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: productMeta(FormModeCreate),
		Fetch: h.productFormFetch(productFormState{
			Mode: FormModeCreate,
			Values: map[string]string{
				"category": catalog.CategoryPlaceholder,
				"company":  catalog.CompanyPlaceholder,
			},
		}),
	})
}

// ProductEdit loads a product and the form options. A failed product load goes to /404.
func (h *UIHandlers) ProductEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		redirect(w, r, notFoundPath)
		return
	}
	p, err := h.Products.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, serviceErrorOpts{Err: err})
		return
	}
	in := p.Input()
	h.Page(w, r, PageSpec{
		Meta: productMeta(FormModeEdit),
		Fetch: h.productFormFetch(productFormState{
			Mode: FormModeEdit,
			ID:   id,
			Values: map[string]string{
				"name":     in.Name,
				"amount":   strconv.FormatInt(in.Amount, 10),
				"category": in.Category,
				"company":  strconv.FormatInt(in.Company.ID, 10),
			},
		}),
	})
}

type productFormState struct {
	Mode   FormMode
	ID     int64
	Values map[string]string
}

// productFormFetch fills the form state and loads the select options, which
// the backend serves from two endpoints.
func (h *UIHandlers) productFormFetch(st productFormState) func(context.Context, map[string]any) error {
	return func(ctx context.Context, data map[string]any) error {
		data["Mode"] = string(st.Mode)
		data["Form"] = validation.FormProduct
		data["Values"] = st.Values
		if st.ID > 0 {
			data["ID"] = st.ID
		}
		data["Categories"] = []string{}
		data["CompanyOptions"] = []catalog.Company{}

		opts, err := h.Products.FormOptions(ctx)
		if err != nil {
			return err
		}
		data["Categories"] = opts.Categories
		data["CompanyOptions"] = opts.Companies
		return nil
	}
}

// ProductCreate handles POST /product.
func (h *UIHandlers) ProductCreate(w http.ResponseWriter, r *http.Request) {
	h.productForm(w, r, FormModeCreate)
}

// ProductUpdate handles POST /product/{id}.
func (h *UIHandlers) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	h.productForm(w, r, FormModeEdit)
}

func (h *UIHandlers) productForm(w http.ResponseWriter, r *http.Request, mode FormMode) {
	extra := map[string]any{}
	if id, ok := pathID(r); ok {
		extra["ID"] = id
	}
	// Options are only needed when the form is shown again; a failed load
	// leaves the selects with just their placeholders.
	if opts, err := h.Products.FormOptions(r.Context()); err == nil {
		extra["Categories"] = opts.Categories
		extra["CompanyOptions"] = opts.Companies
	} else if isAuthFailure(err) {
		h.handleServiceError(w, r, serviceErrorOpts{Err: err})
		return
	}

	HandleForm(FormHandlerOpts[catalog.ProductInput]{
		Handler:    h,
		W:          w,
		R:          r,
		Mode:       mode,
		Schema:     validation.ProductSchema(),
		Decode:     decodeProduct,
		Service:    h.Products,
		Renderer:   h.renderPage,
		SuccessURL: func(id int64) string { return productsPath + "/" + strconv.FormatInt(id, 10) },
		PageMeta:   productMeta(mode),
		ExtraData:  extra,
	})
}

func decodeProduct(v map[string]string) (catalog.ProductInput, map[string]string) {
	errs := map[string]string{}
	amount, err := strconv.ParseInt(v["amount"], 10, 64)
	if err != nil {
		errs["amount"] = "Amount must be a whole number."
	}
	companyID, err := strconv.ParseInt(v["company"], 10, 64)
	if err != nil || companyID <= 0 {
		errs["company"] = "Company is required."
	}
	return catalog.ProductInput{
		Name:     v["name"],
		Amount:   amount,
		Category: v["category"],
		Company:  catalog.CompanyRef{ID: companyID},
	}, errs
}

// ProductDelete removes a product.
func (h *UIHandlers) ProductDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteOpts{
		Delete:   h.Products.Delete,
		Success:  msgProductDeleted,
		Redirect: productsPath,
	})
}

func productMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit Product", PageTitle: "Products", Subtitle: "Edit Product", CurrentPage: PageProductForm}
	}
	return PageMeta{Title: "Add Product", PageTitle: "Products", Subtitle: "Add Product", CurrentPage: PageProductForm}
}
