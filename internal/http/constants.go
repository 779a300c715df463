package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard = "dashboard"
	PageNotFound  = "not-found"

	// Auth pages render without navigation chrome.
	PageLogin    = "login"
	PageRegister = "register"

	PageCompanies   = "companies"
	PageCompanyForm = "company-form"

	PageProducts    = "products"
	PageProductForm = "product-form"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// User-facing messages shared by several handlers. The spelling of the error
// strings matches what users of the console have always seen.
const (
	errMsgFixBelow      = "Please fix the errors below."
	errMsgGeneric       = "An error occured"
	errMsgAuthTitle     = "An Error Occured"
	msgUpdated          = "Updated"
	msgCompanyDeleted   = "Deleted this company and related products"
	msgProductDeleted   = "Deleted this product"
	notFoundPath        = "/404"
	validateRoutePrefix = "/forms/"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard:   "dashboard-content",
	PageNotFound:    "not-found-content",
	PageLogin:       "login-content",
	PageRegister:    "register-content",
	PageCompanies:   "companies-content",
	PageCompanyForm: "company-form-content",
	PageProducts:    "products-content",
	PageProductForm: "product-form-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
