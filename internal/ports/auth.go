// Package ports defines interfaces (hexagonal ports) for the web tier.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
)

// ErrSessionNotFound is returned by session stores for missing, expired or
// unreadable sessions. Callers treat it as "logged out".
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned instead of ErrSessionNotFound when the record
// existed but outlived its ExpiresAt. It matches ErrSessionNotFound.
var ErrSessionExpired = fmt.Errorf("%w: expired", ErrSessionNotFound)

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionLister enumerates live sessions. Used by the admin CLI.
type SessionLister interface {
	List(ctx context.Context) ([]domainauth.Session, error)
}
