package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	"github.com/gigglit/gigglit-web/internal/http/validation"
)

// LoginForm renders the login page. A logged in user is sent home.
func (h *UIHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if !IsVisitor(r.Context()) {
		http.Redirect(w, r, safeRedirectPath(r.URL.Query().Get("redirect_uri")), http.StatusSeeOther)
		return
	}
	data := h.pageData(w, r, PageMeta{Title: "Log in", PageTitle: "Log in", CurrentPage: PageLogin}).
		With("RedirectURI", safeRedirectPath(r.URL.Query().Get("redirect_uri"))).
		With("FormData", model.LoginInput{}).
		Build()
	h.renderPage(w, r, data)
}

// Login exchanges credentials for a session.
// POST /login (email, password, redirect_uri).
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))
	HandleForm(FormHandlerOpts[model.LoginInput]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: parseLoginForm,
		Submit: func(ctx context.Context, _ string, in model.LoginInput) error {
			sess, err := h.Sessions.Login(ctx, in)
			return h.startSession(w, r, sess, err)
		},
		Renderer:   h.renderPage,
		SuccessURL: redirectURI,
		PageMeta:   PageMeta{Title: "Log in", PageTitle: "Log in", CurrentPage: PageLogin},
		ExtraData:  map[string]any{"RedirectURI": redirectURI},
	})
}

// SignupForm renders the signup page.
func (h *UIHandlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	if !IsVisitor(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := h.pageData(w, r, PageMeta{Title: "Sign up", PageTitle: "Create an account", CurrentPage: PageSignup}).
		With("RedirectURI", "/").
		With("FormData", model.SignupInput{}).
		Build()
	h.renderPage(w, r, data)
}

// Signup creates an account and logs it in.
// POST /signup (name, email, password, confirmPassword).
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.SignupInput]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: parseSignupForm,
		Submit: func(ctx context.Context, _ string, in model.SignupInput) error {
			sess, err := h.Sessions.Signup(ctx, in)
			return h.startSession(w, r, sess, err)
		},
		Renderer:   h.renderPage,
		SuccessURL: "/",
		PageMeta:   PageMeta{Title: "Sign up", PageTitle: "Create an account", CurrentPage: PageSignup},
		ExtraData:  map[string]any{"RedirectURI": "/"},
	})
}

// Logout destroys the session, clears the cookie and returns to /login.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := h.Cookie.Read(r); id != "" {
		if err := h.Sessions.Logout(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", slog.Any("error", err))
		}
	}
	h.Cookie.Clear(w, r)
	redirect(w, r, "/login")
}

// startSession sets the session cookie once login or signup succeeded.
func (h *UIHandlers) startSession(w http.ResponseWriter, r *http.Request, sess *domainauth.Session, err error) error {
	if err != nil {
		return err
	}
	h.Cookie.Set(w, r, sess)
	return nil
}

func parseLoginForm(r *http.Request) (model.LoginInput, map[string]string) {
	in := model.LoginInput{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	return in, validation.Struct(in)
}

func parseSignupForm(r *http.Request) (model.SignupInput, map[string]string) {
	in := model.SignupInput{
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	return in, validation.Struct(in)
}
