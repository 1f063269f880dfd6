package httpx

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"

	gigglit "github.com/gigglit/gigglit-web"
	"github.com/gigglit/gigglit-web/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions  *service.SessionService
	Feed      *service.FeedService
	Posts     *service.PostService
	Bookmarks *service.BookmarkService
	Topics    *service.TopicService

	// Cookie settings
	SessionCookieName string
	CookieDomain      string
	SecureCookies     bool

	// Optional: override the embedded templates and static assets (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS

	IsDev  bool         // Development mode: serve templates and assets from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router with its middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := resolveAssets(services)
	if err != nil {
		return nil, err
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	cookie := SessionCookie{
		Name:   services.SessionCookieName,
		Domain: services.CookieDomain,
		Secure: services.SecureCookies,
	}
	h := &UIHandlers{
		T:         tr,
		Sessions:  services.Sessions,
		Feed:      services.Feed,
		Posts:     services.Posts,
		Bookmarks: services.Bookmarks,
		Topics:    services.Topics,
		Cookie:    cookie,
		Logger:    logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	registerAuthRoutes(mux, h)
	registerFeedRoutes(mux, h)
	registerPostRoutes(mux, h)
	registerBookmarkRoutes(mux, h)
	registerAdminRoutes(mux, h)
	mux.HandleFunc("/", h.NotFound)

	var resolver SessionResolver
	if services.Sessions != nil {
		resolver = services.Sessions
	}

	var handler http.Handler = mux
	handler = LoadSession(resolver, cookie)(handler)
	handler = CSRFProtection(CSRFConfig{
		CookieDomain: services.CookieDomain,
		Secure:       services.SecureCookies,
	})(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// resolveAssets picks the template and static filesystems. Dev mode reads
// from disk so edits show up on reload; otherwise the embedded copies are used.
func resolveAssets(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS("frontend/static")
		}
		return templateFS, staticFS, nil
	}

	var err error
	if templateFS == nil {
		if templateFS, err = fs.Sub(gigglit.TemplateFS, "frontend/templates"); err != nil {
			return nil, nil, err
		}
	}
	if staticFS == nil {
		if staticFS, err = fs.Sub(gigglit.StaticFS, "frontend/static"); err != nil {
			return nil, nil, err
		}
	}
	if templateFS == nil || staticFS == nil {
		return nil, nil, errors.New("template and static filesystems are required")
	}
	return templateFS, staticFS, nil
}

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	// Content-hashed filenames such as app.abc12345.css
	hashedFilePattern := regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}

func registerAuthRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /signup", h.SignupForm)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /logout", h.Logout)
}

func registerFeedRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.Handle("POST /users/{id}/follow", RequireLogin(http.HandlerFunc(h.Follow)))
	mux.Handle("POST /users/{id}/unfollow", RequireLogin(http.HandlerFunc(h.Unfollow)))
}

func registerPostRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.Handle("GET /posts/new", RequireLogin(http.HandlerFunc(h.NewPost)))
	mux.Handle("POST /posts", RequireLogin(http.HandlerFunc(h.CreatePost)))
	mux.Handle("GET /posts/{id}/edit", RequireLogin(http.HandlerFunc(h.EditPost)))
	mux.Handle("POST /posts/{id}", RequireLogin(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("POST /posts/{id}/delete", RequireLogin(http.HandlerFunc(h.DeletePost)))
	mux.Handle("POST /posts/{id}/like", RequireLogin(http.HandlerFunc(h.LikePost)))
	mux.Handle("POST /posts/{id}/dislike", RequireLogin(http.HandlerFunc(h.DislikePost)))
}

func registerBookmarkRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.Handle("GET /bookmark", RequireLogin(http.HandlerFunc(h.BookmarksPage)))
	mux.Handle("POST /bookmarks/{id}/toggle", RequireLogin(http.HandlerFunc(h.ToggleBookmark)))
}

// registerAdminRoutes wires the topic and post administration pages.
func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers) {
	wrapAdmin := RequireAdmin(h.Forbidden)
	mux.Handle("GET /topics/new", wrapAdmin(http.HandlerFunc(h.TopicsPage)))
	mux.Handle("POST /topics", wrapAdmin(http.HandlerFunc(h.CreateTopic)))
	mux.Handle("GET /topics/{id}/edit", wrapAdmin(http.HandlerFunc(h.EditTopic)))
	mux.Handle("POST /topics/{id}", wrapAdmin(http.HandlerFunc(h.UpdateTopic)))
	mux.Handle("POST /topics/{id}/delete", wrapAdmin(http.HandlerFunc(h.DeleteTopic)))
	mux.Handle("GET /adminPosts", wrapAdmin(http.HandlerFunc(h.AdminPosts)))
	mux.Handle("POST /adminPosts/{id}/delete", wrapAdmin(http.HandlerFunc(h.AdminDeletePost)))
}
