package auth

// Package auth contains domain-level types for sessions and their derived
// predicates. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// Session is the server-side record kept for a logged-in user: the subset of
// the backend User needed to render pages and call the API on their behalf.
// ID is the opaque session identifier handed to the browser.
type Session struct {
	ID        string     `json:"id"`
	UserID    model.ID   `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Valid reports whether the record carries the fields every page relies on.
// Anything else is treated as a logged out visitor.
func (s Session) Valid() bool {
	return s.ID != "" && !s.UserID.IsZero() && strings.TrimSpace(s.Token) != ""
}

// ExpiredAt reports whether the session has expired at the given instant.
func (s Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// CurrentUser returns the session when it is present and well-formed, nil otherwise.
func CurrentUser(s *Session) *Session {
	if s == nil || !s.Valid() {
		return nil
	}
	return s
}

// IsLoggedIn reports whether a usable session is present.
func IsLoggedIn(s *Session) bool {
	return CurrentUser(s) != nil
}

// IsAdmin reports whether a usable session is present and carries the admin role.
func IsAdmin(s *Session) bool {
	cur := CurrentUser(s)
	return cur != nil && strings.EqualFold(string(cur.Role), string(model.RoleAdmin))
}

// Token returns the bearer token of a usable session, or "".
func Token(s *Session) string {
	cur := CurrentUser(s)
	if cur == nil {
		return ""
	}
	return cur.Token
}

// UserID returns the user identifier of a usable session, or "".
func UserID(s *Session) model.ID {
	cur := CurrentUser(s)
	if cur == nil {
		return ""
	}
	return cur.UserID
}
