package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gigglit/gigglit-web/internal/adapters/gigglitapi"
	"github.com/gigglit/gigglit-web/internal/adapters/memory"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	"github.com/gigglit/gigglit-web/internal/service"
	"github.com/gigglit/gigglit-web/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testCSRFToken = "test-csrf-token"

// testApp is the full router wired to a FakeBackend and an in-memory session store.
type testApp struct {
	t       *testing.T
	backend *testutil.FakeBackend
	store   *memory.SessionStore
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}

	backend := testutil.NewFakeBackend(t)
	client, err := gigglitapi.NewClient(gigglitapi.ClientOptions{BaseURL: backend.URL()})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewSessionStore()
	handler, err := NewRouter(RouterServices{
		Sessions:  service.NewSessionService(service.SessionServiceOptions{API: client, Sessions: store, Logger: logger}),
		Feed:      service.NewFeedService(service.FeedServiceOptions{API: client, Logger: logger}),
		Posts:     service.NewPostService(service.PostServiceOptions{API: client}),
		Bookmarks: service.NewBookmarkService(service.BookmarkServiceOptions{API: client, Logger: logger}),
		Topics:    service.NewTopicService(service.TopicServiceOptions{API: client}),

		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
		Logger:     logger,
	})
	require.NoError(t, err)

	return &testApp{t: t, backend: backend, store: store, handler: handler}
}

// reqOption customizes a test request.
type reqOption func(*http.Request)

func withSession(c *http.Cookie) reqOption {
	return func(r *http.Request) {
		if c != nil {
			r.AddCookie(c)
		}
	}
}

func withHTMX() reqOption {
	return func(r *http.Request) { r.Header.Set("Hx-Request", "true") }
}

func withReferer(ref string) reqOption {
	return func(r *http.Request) { r.Header.Set("Referer", ref) }
}

// withoutCSRF sends the request without the CSRF cookie or field.
func withoutCSRF() reqOption {
	return func(r *http.Request) {
		r.Header.Del("X-Csrf-Token")
		cookies := r.Cookies()
		r.Header.Del("Cookie")
		for _, c := range cookies {
			if c.Name != DefaultCSRFCookieName {
				r.AddCookie(c)
			}
		}
	}
}

func (a *testApp) get(path string, opts ...reqOption) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(http.MethodGet, path, nil, opts...)
}

func (a *testApp) post(path string, form url.Values, opts ...reqOption) *httptest.ResponseRecorder {
	a.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return a.do(http.MethodPost, path, form, opts...)
}

func (a *testApp) do(method, path string, form url.Values, opts ...reqOption) *httptest.ResponseRecorder {
	a.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Csrf-Token", testCSRFToken)
	}
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// login posts credentials and returns the session cookie.
func (a *testApp) login(email, password string) *http.Cookie {
	a.t.Helper()
	rec := a.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(a.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	c := responseCookie(rec, DefaultSessionCookieName)
	require.NotNil(a.t, c, "login did not set the session cookie")
	return c
}

// loginAs registers a user on the backend and logs them in.
func (a *testApp) loginAs(name string, role model.Role) (model.User, *http.Cookie) {
	a.t.Helper()
	email := strings.ToLower(name) + "@example.com"
	u := a.backend.AddUser(name, email, "secret", role)
	return u, a.login(email, "secret")
}

// responseCookie returns the last cookie named name set on rec.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

// flashFrom decodes the flash cookie set on rec, if any.
func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) *Flash {
	t.Helper()
	c := responseCookie(rec, flashCookieName)
	if c == nil || c.Value == "" {
		return nil
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	return PopFlash(httptest.NewRecorder(), req)
}
