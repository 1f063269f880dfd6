package httpx

import (
	"log/slog"
	"net/http"

	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Sessions  *service.SessionService
	Feed      *service.FeedService
	Posts     *service.PostService
	Bookmarks *service.BookmarkService
	Topics    *service.TopicService
	Cookie    SessionCookie
	Logger    *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// pageData starts the template data for a page, consuming any pending flash.
func (h *UIHandlers) pageData(w http.ResponseWriter, r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return NewTemplateData(r, meta).WithFlash(PopFlash(w, r))
}

// renderPage renders a page with HTMX partial support.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial render")
	}
}

// renderFragment renders a single named partial for an htmx swap.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderFragment(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, phase string) {
	h.logger().ErrorContext(r.Context(), "template render failed",
		slog.String("phase", phase),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, "Template error", http.StatusInternalServerError)
}

// ErrorPage renders the standalone error page.
func (h *UIHandlers) ErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := NewTemplateData(r, PageMeta{Title: http.StatusText(status)}).
		With("Code", status).
		With("Message", message).
		With("ShowLogin", IsVisitor(r.Context())).
		With("RedirectURI", safeRedirectPath(r.URL.RequestURI())).
		Build()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if h.T == nil {
		_, _ = w.Write([]byte(message))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "error page render failed", slog.Any("error", err))
	}
}

// NotFound renders the 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.ErrorPage(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
}

// Forbidden renders the 403 page shown to logged in users without the admin role.
func (h *UIHandlers) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.ErrorPage(w, r, http.StatusForbidden, "Admin access required")
}

// failAndRedirectBack reports err as a flash message and returns the user to
// the page they came from. A token the backend no longer accepts ends the
// session instead.
func (h *UIHandlers) failAndRedirectBack(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if h.endRejectedSession(w, r, err) {
		return
	}
	h.logServerFailure(r, err)
	SetFlash(w, FlashError, apperrors.UserMessage(err))
	redirectBack(w, r, fallback)
}

// logServerFailure records failures the user cannot fix: an unreachable or
// failing backend, or an error inside gigglit-web itself.
func (h *UIHandlers) logServerFailure(r *http.Request, err error) {
	switch {
	case apperrors.IsInternal(err):
		h.logger().ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	case apperrors.IsUpstream(err):
		h.logger().WarnContext(r.Context(), "backend call failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

// endRejectedSession logs the user out when the backend rejected their token
// and sends them to the login page. It reports whether it handled the response.
func (h *UIHandlers) endRejectedSession(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.IsUnauthorized(err) {
		return false
	}
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		return false
	}
	if h.Sessions != nil {
		if lerr := h.Sessions.Logout(r.Context(), sess.ID); lerr != nil {
			h.logger().WarnContext(r.Context(), "failed to end rejected session", slog.Any("error", lerr))
		}
	}
	h.Cookie.Clear(w, r)
	SetFlash(w, FlashError, "Your session has expired, please log in again")
	redirectToLogin(w, r)
	return true
}
