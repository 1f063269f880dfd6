package config

import (
	"strings"
	"time"
)

const (
	defaultAPITimeout = 15 * time.Second
	maxAPITimeout     = 2 * time.Minute

	// DefaultBookmarkListExpr selects the bookmark list from either a bare
	// array response or an object wrapping it under "bookmarks".
	DefaultBookmarkListExpr = "type(@) == 'array' && @ || bookmarks"
)

// APIConfig configures the client for the Gigglit REST backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://api.gigglit.example".
	BaseURL string `env:"API_URL" envDefault:"http://localhost:3000"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// BookmarkListExpr is a JMESPath expression applied to the GET /bookmarks
	// response body to select the list of bookmarked posts or IDs.
	BookmarkListExpr string `env:"BOOKMARK_LIST_EXPR" envDefault:"type(@) == 'array' && @ || bookmarks"`
}

// Sanitize applies guardrails to API client configuration.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")

	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}

	if strings.TrimSpace(a.BookmarkListExpr) == "" {
		a.BookmarkListExpr = DefaultBookmarkListExpr
	}
}
