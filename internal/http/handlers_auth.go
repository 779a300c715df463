package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/http/validation"
	"github.com/target/catalog-console/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta    = PageMeta{Title: "Login", PageTitle: "Login", CurrentPage: PageLogin}
	registerMeta = PageMeta{Title: "Register", PageTitle: "Register", CurrentPage: PageRegister}
)

// LoginPage renders the login form.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthForm(w, r, authFormOpts{Meta: loginMeta, Form: validation.FormLogin})
}

// RegisterPage renders the registration form.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthForm(w, r, authFormOpts{Meta: registerMeta, Form: validation.FormRegister})
}

// Login authenticates against the backend. Success stores the token cookie and
// goes home; failure re-renders the form with the backend message.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	values := formValues(r, validation.LoginSchema().Names())
	sess := h.Auth.Login(r.Context(), values["email"], r.PostFormValue("password"))
	h.completeAuth(w, r, sess, authFormOpts{Meta: loginMeta, Form: validation.FormLogin, Values: values})
}

// Register creates an account and signs it in.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	values := formValues(r, validation.RegisterSchema().Names())
	sess := h.Auth.Register(r.Context(), domainauth.Registration{
		FirstName: values["firstName"],
		LastName:  values["lastName"],
		Email:     values["email"],
		Password:  r.PostFormValue("password"),
	})
	h.completeAuth(w, r, sess, authFormOpts{Meta: registerMeta, Form: validation.FormRegister, Values: values})
}

// Logout drops the token cookie, queues the farewell notice and returns to login.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	res := h.Auth.Logout(r.Context())
	h.Cookies.clearToken(w, r)
	pushNotice(r, res.Notice)
	redirect(w, r, res.Redirect)
}

func (h *UIHandlers) completeAuth(w http.ResponseWriter, r *http.Request, sess service.Session, opts authFormOpts) {
	if sess.ErrorMessage != "" || sess.Token == "" {
		opts.ErrorMessage = sess.ErrorMessage
		if opts.ErrorMessage == "" {
			opts.ErrorMessage = errMsgGeneric
		}
		h.renderAuthForm(w, r, opts)
		return
	}
	h.Cookies.setToken(w, r, sess.Token)
	redirect(w, r, service.HomePath)
}

type authFormOpts struct {
	Meta         PageMeta
	Form         string
	Values       map[string]string
	ErrorMessage string
}

// renderAuthForm renders login or register. The password is never echoed back.
func (h *UIHandlers) renderAuthForm(w http.ResponseWriter, r *http.Request, opts authFormOpts) {
	values := opts.Values
	if values == nil {
		values = map[string]string{}
	}
	delete(values, "password")
	b := NewTemplateData(r, opts.Meta).
		WithValues(values).
		With("Form", opts.Form)
	if msg := strings.TrimSpace(opts.ErrorMessage); msg != "" {
		b.With("AuthError", errMsgAuthTitle).WithError(msg)
	}
	h.renderPage(w, r, b.Build())
}
