package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", IsHTMX(r)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver looks up the session behind an opaque cookie value.
// It returns nil for unknown, expired or malformed sessions.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) *domainauth.Session
}

// LoadSession returns a middleware that resolves the session cookie and stores
// the session in the request context. A cookie that no longer resolves is
// cleared so the browser stops sending it.
func LoadSession(resolver SessionResolver, cookie SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cookie.Read(r)
			if id == "" || resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			session := resolver.Resolve(r.Context(), id)
			if session == nil {
				cookie.Clear(w, r)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// RequireLogin guards a handler behind a usable session. Visitors are sent to
// the login page before the handler (and any backend call) runs.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domainauth.IsLoggedIn(GetSessionFromContext(r.Context())) {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards a handler behind an admin session. Visitors are sent to
// the login page; logged in non-admins get the forbidden page from denied.
func RequireAdmin(denied http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())
			if !domainauth.IsLoggedIn(session) {
				redirectToLogin(w, r)
				return
			}
			if !domainauth.IsAdmin(session) {
				if denied != nil {
					denied(w, r)
					return
				}
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectToLogin sends the browser to /login with the current page as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	loginURL := "/login?redirect_uri=" + url.QueryEscape(redirectPathForRequest(r))

	if IsHTMX(r) {
		SetHXRedirect(w, loginURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusFound)
}

// redirectPathForRequest picks the page the user should land on after login.
// Non-GET requests return to the page they were submitted from.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

// safeRedirectFromURL reduces an absolute or relative URL to a same-site path, or "".
func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}

	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}

	return safeRedirectPath(raw)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// and falls back to "/" otherwise.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !startsWithSingleSlash(candidate) {
		return "/"
	}
	return candidate
}

// startsWithSingleSlash rejects "//host" and "/\host" which browsers treat as
// scheme-relative URLs.
func startsWithSingleSlash(p string) bool {
	if len(p) == 0 || p[0] != '/' {
		return false
	}
	return len(p) == 1 || (p[1] != '/' && p[1] != '\\')
}
