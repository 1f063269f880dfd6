package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL bounds a session when the backend token carries no expiry.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionEvent names a session lifecycle transition.
type SessionEvent string

const (
	SessionLogin   SessionEvent = "login"
	SessionSignup  SessionEvent = "signup"
	SessionLogout  SessionEvent = "logout"
	SessionExpired SessionEvent = "expired"
)

// SessionTransition is published to listeners on every lifecycle change.
// Session is the record as it was at the time of the change.
type SessionTransition struct {
	Event   SessionEvent
	Session domainauth.Session
	At      time.Time
}

// SessionListener observes session lifecycle transitions.
type SessionListener interface {
	SessionChanged(ctx context.Context, tr SessionTransition)
}

// SessionListenerFunc adapts a function to SessionListener.
type SessionListenerFunc func(ctx context.Context, tr SessionTransition)

// SessionChanged calls f.
func (f SessionListenerFunc) SessionChanged(ctx context.Context, tr SessionTransition) {
	f(ctx, tr)
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API      ports.UserAPI
	Sessions ports.SessionStore
	TTL      time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// SessionService owns the session lifecycle: it exchanges credentials with the
// backend, persists the resulting session and resolves it on later requests.
type SessionService struct {
	api      ports.UserAPI
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu        sync.RWMutex
	listeners []SessionListener
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		api:      opts.API,
		sessions: opts.Sessions,
		ttl:      ttl,
		now:      now,
		logger:   logger,
	}
}

// Subscribe registers l. Listeners are called synchronously in registration order.
func (s *SessionService) Subscribe(l SessionListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *SessionService) publish(ctx context.Context, event SessionEvent, sess domainauth.Session) {
	s.mu.RLock()
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.RUnlock()

	tr := SessionTransition{Event: event, Session: sess, At: s.now()}
	for _, l := range listeners {
		l.SessionChanged(ctx, tr)
	}
}

// Login authenticates against the backend and starts a session.
func (s *SessionService) Login(ctx context.Context, in model.LoginInput) (*domainauth.Session, error) {
	user, err := s.api.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, user, SessionLogin)
}

// Signup registers a new account and starts a session for it.
func (s *SessionService) Signup(ctx context.Context, in model.SignupInput) (*domainauth.Session, error) {
	user, err := s.api.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, user, SessionSignup)
}

func (s *SessionService) start(ctx context.Context, user model.User, event SessionEvent) (*domainauth.Session, error) {
	if user.ID.IsZero() || strings.TrimSpace(user.Token) == "" {
		return nil, apperrors.FromStatus(http.StatusBadGateway, "Unexpected response from the Gigglit service")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	if exp, ok := tokenExpiry(user.Token); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}
	if !expiresAt.After(now) {
		return nil, apperrors.Unauthorized("Your session has expired, please log in again")
	}

	sess := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     user.Token,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(fmt.Errorf("save session: %w", err), apperrors.ErrCodeInternal, apperrors.GenericMessage)
	}

	s.publish(ctx, event, sess)
	return &sess, nil
}

// Resolve returns the live session for sessionID, or nil. Missing, expired and
// unreadable sessions all resolve to nil; store failures are logged and also
// treated as logged out.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) *domainauth.Session {
	if sessionID == "" {
		return nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ports.ErrSessionExpired):
		s.publish(ctx, SessionExpired, domainauth.Session{ID: sessionID})
		return nil
	case errors.Is(err, ports.ErrSessionNotFound):
		return nil
	case err != nil:
		s.logger.WarnContext(ctx, "session lookup failed", "error", err)
		return nil
	}

	if sess.ExpiredAt(s.now()) {
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
			s.logger.WarnContext(ctx, "expired session cleanup failed", "error", delErr)
		}
		s.publish(ctx, SessionExpired, sess)
		return nil
	}

	return domainauth.CurrentUser(&sess)
}

// Logout destroys the session. Logging out without a session is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		s.logger.WarnContext(ctx, "session lookup before logout failed", "error", err)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if sess.ID != "" {
		s.publish(ctx, SessionLogout, sess)
	}
	return nil
}

// tokenExpiry reads the exp claim of a JWT bearer token without verifying it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// generateSessionID creates a random session ID.
func generateSessionID() string {
	return uuid.NewString()
}

// LogSessionTransitions returns a listener that writes one log line per
// transition. Tokens are never logged.
func LogSessionTransitions(logger *slog.Logger) SessionListener {
	if logger == nil {
		logger = slog.Default()
	}
	return SessionListenerFunc(func(ctx context.Context, tr SessionTransition) {
		logger.InfoContext(ctx, "session "+string(tr.Event),
			"session_id", tr.Session.ID,
			"user_id", tr.Session.UserID.String(),
			"role", string(tr.Session.Role),
		)
	})
}
