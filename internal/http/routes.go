package httpx

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	catalogconsole "github.com/target/catalog-console"
	"github.com/target/catalog-console/internal/http/validation"
	"github.com/target/catalog-console/internal/ports"
	"github.com/target/catalog-console/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions  *service.SessionService
	Companies *service.CompanyService
	Products  *service.ProductService
	Dashboard *service.DashboardService
	Flash     ports.FlashStore

	Cookies     CookieConfig
	Compression *CompressionConfig // nil disables gzip
	PageSize    int

	// TemplateFS and StaticFS override the embedded (or, in dev mode, on-disk) trees.
	TemplateFS fs.FS
	StaticFS   fs.FS

	IsDev  bool         // Development mode flag for hot reloading, etc.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the console router wrapped in its middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil || services.Companies == nil || services.Products == nil ||
		services.Dashboard == nil || services.Flash == nil {
		return nil, errors.New("router: missing service")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{
		T:         tr,
		Auth:      services.Sessions,
		Companies: services.Companies,
		Products:  services.Products,
		Dashboard: services.Dashboard,
		Cookies:   services.Cookies,
		PageSize:  services.PageSize,
		IsDev:     services.IsDev,
		Logger:    logger,
	}
	validator := &Validator{T: tr, Schemas: validation.Schemas()}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services))
	registerAuthRoutes(mux, ui)
	registerCatalogRoutes(mux, ui)
	mux.HandleFunc("POST /forms/{form}/validate", validator.Validate)
	mux.HandleFunc("GET /404", ui.NotFoundPage)
	mux.HandleFunc("GET /{$}", ui.DashboardPage)
	mux.HandleFunc("/", ui.NotFound)

	var handler http.Handler = mux
	handler = AutoLogin(services.Sessions, services.Cookies)(handler)
	handler = Flash(services.Flash, services.Cookies, logger)(handler)
	handler = CSRFProtection(CSRFConfig{Domain: services.Cookies.Domain, Logger: logger})(handler)
	if services.Compression != nil {
		handler = Compression(*services.Compression, logger)(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

func registerAuthRoutes(mux *http.ServeMux, ui *UIHandlers) {
	mux.HandleFunc("GET "+service.LoginPath, ui.LoginPage)
	mux.HandleFunc("POST "+service.LoginPath, ui.Login)
	mux.HandleFunc("GET "+service.RegisterPath, ui.RegisterPage)
	mux.HandleFunc("POST "+service.RegisterPath, ui.Register)
	mux.HandleFunc("POST /auth/logout", ui.Logout)
}

// crudRoutes names the handlers of one catalog resource.
type crudRoutes struct {
	Base                 string
	List, Add, Create    http.HandlerFunc
	Edit, Update, Delete http.HandlerFunc
}

func registerCRUD(mux *http.ServeMux, c crudRoutes) {
	mux.HandleFunc("GET "+c.Base, c.List)
	mux.HandleFunc("GET "+c.Base+"/add", c.Add)
	mux.HandleFunc("POST "+c.Base, c.Create)
	mux.HandleFunc("GET "+c.Base+"/{id}", c.Edit)
	mux.HandleFunc("POST "+c.Base+"/{id}", c.Update)
	mux.HandleFunc("POST "+c.Base+"/{id}/delete", c.Delete)
}

func registerCatalogRoutes(mux *http.ServeMux, ui *UIHandlers) {
	registerCRUD(mux, crudRoutes{
		Base:   companiesPath,
		List:   ui.CompaniesList,
		Add:    ui.CompanyAdd,
		Create: ui.CompanyCreate,
		Edit:   ui.CompanyEdit,
		Update: ui.CompanyUpdate,
		Delete: ui.CompanyDelete,
	})
	registerCRUD(mux, crudRoutes{
		Base:   productsPath,
		List:   ui.ProductsList,
		Add:    ui.ProductAdd,
		Create: ui.ProductCreate,
		Edit:   ui.ProductEdit,
		Update: ui.ProductUpdate,
		Delete: ui.ProductDelete,
	})
}

// templateFS picks the template tree: an explicit override, the working copy
// in dev mode for hot reloading, or the embedded copy.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(catalogconsole.TemplateFS, "frontend/templates")
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* from disk in dev mode and from the embedded tree otherwise.
func staticHandler(services RouterServices) http.Handler {
	var fsys fs.FS
	switch {
	case services.StaticFS != nil:
		fsys = services.StaticFS
	case services.IsDev:
		fsys = os.DirFS("frontend/static")
	default:
		sub, err := fs.Sub(catalogconsole.StaticFS, "frontend/static")
		if err != nil {
			sub = os.DirFS("frontend/static")
		}
		fsys = sub
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServerFS(fsys)), services.IsDev)
}

// staticWithCacheHeaders disables caching in dev mode so edits show up on reload.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}
