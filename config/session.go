package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSessionTTL matches the 30 day lifetime of the session cookie.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionStoreKind selects where session records are kept.
type SessionStoreKind string

const (
	// SessionStoreRedis keeps sessions in Redis (default, survives restarts).
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStoreMemory keeps sessions in process memory (development only).
	SessionStoreMemory SessionStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: redis, memory)", v)
	}
}

// SessionConfig groups session lifetime and storage configuration.
type SessionConfig struct {
	// Store determines which session store implementation is used.
	Store SessionStoreKind `env:"STORE" envDefault:"redis"`

	// TTL is the maximum session lifetime. Sessions end earlier when the
	// backend token carries an earlier expiry.
	TTL time.Duration `env:"TTL" envDefault:"720h"`

	// Prefix namespaces session keys in the store.
	Prefix string `env:"PREFIX" envDefault:"gigglit:session:"`

	// CookieName is the browser cookie carrying the opaque session id.
	CookieName string `env:"COOKIE_NAME" envDefault:"gigglit_session"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = DefaultSessionTTL
	}
	if s.Store == "" {
		s.Store = SessionStoreRedis
	}
	if strings.TrimSpace(s.Prefix) == "" {
		s.Prefix = "gigglit:session:"
	}
	if strings.TrimSpace(s.CookieName) == "" {
		s.CookieName = "gigglit_session"
	}
}
