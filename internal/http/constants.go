package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome       = "home"
	PageLogin      = "login"
	PageSignup     = "signup"
	PagePostForm   = "post-form"
	PageBookmarks  = "bookmarks"
	PageTopics     = "topics"
	PageTopicForm  = "topic-form"
	PageAdminPosts = "admin-posts"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

// DefaultSessionCookieName is the browser cookie carrying the opaque session id.
const DefaultSessionCookieName = "gigglit_session"

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:       "home-content",
	PageLogin:      "login-content",
	PageSignup:     "signup-content",
	PagePostForm:   "post-form-content",
	PageBookmarks:  "bookmarks-content",
	PageTopics:     "topics-content",
	PageTopicForm:  "topic-form-content",
	PageAdminPosts: "admin-posts-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "home-content"
}
