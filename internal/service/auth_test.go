package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gigglit/gigglit-web/internal/adapters/memory"
	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/mocks"
	"github.com/gigglit/gigglit-web/internal/ports"
	"github.com/gigglit/gigglit-web/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingListener struct {
	events []SessionTransition
}

func (r *recordingListener) SessionChanged(_ context.Context, tr SessionTransition) {
	r.events = append(r.events, tr)
}

func (r *recordingListener) names() []SessionEvent {
	out := make([]SessionEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event)
	}
	return out
}

type sessionFixture struct {
	api      *mocks.MockGigglitAPI
	store    *memory.SessionStore
	svc      *SessionService
	now      time.Time
	listener *recordingListener
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &sessionFixture{
		api:      mocks.NewMockGigglitAPI(ctrl),
		now:      testutil.TestTime(),
		listener: &recordingListener{},
	}
	clock := func() time.Time { return f.now }
	f.store = memory.NewSessionStore().WithClock(clock)
	f.svc = NewSessionService(SessionServiceOptions{
		API:      f.api,
		Sessions: f.store,
		Now:      clock,
	})
	f.svc.Subscribe(f.listener)
	return f
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestSessionService_LoginCreatesSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	in := model.LoginInput{Email: "a@example.com", Password: "pw"}

	f.api.EXPECT().Login(gomock.Any(), in).Return(model.User{
		ID:    "64b7f0c2a1b2c3d4e5f60718",
		Name:  "Alice",
		Email: "a@example.com",
		Role:  model.RoleUser,
		Token: "opaque-token",
	}, nil)

	sess, err := f.svc.Login(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, model.ID("64b7f0c2a1b2c3d4e5f60718"), sess.UserID)
	assert.Equal(t, "opaque-token", sess.Token)
	assert.Equal(t, f.now.Add(DefaultSessionTTL), sess.ExpiresAt)

	stored, err := f.store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, *sess, stored)

	assert.Equal(t, []SessionEvent{SessionLogin}, f.listener.names())
	assert.Equal(t, sess.ID, f.listener.events[0].Session.ID)
}

func TestSessionService_LoginFailureCreatesNothing(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(model.User{}, apperrors.FromStatus(400, "Invalid email or password"))

	sess, err := f.svc.Login(ctx, model.LoginInput{Email: "a@example.com", Password: "bad"})
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, "Invalid email or password", apperrors.UserMessage(err))

	list, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.listener.events)
}

func TestSessionService_SignupPublishesSignup(t *testing.T) {
	f := newSessionFixture(t)
	f.api.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(model.User{ID: "u2", Name: "Bob", Token: "t"}, nil)

	sess, err := f.svc.Signup(context.Background(), model.SignupInput{Name: "Bob", Email: "b@example.com", Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", sess.Name)
	assert.Equal(t, []SessionEvent{SessionSignup}, f.listener.names())
}

func TestSessionService_RejectsResponseWithoutToken(t *testing.T) {
	f := newSessionFixture(t)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1"}, nil)

	sess, err := f.svc.Login(context.Background(), model.LoginInput{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestSessionService_TokenExpiryClampsSession(t *testing.T) {
	f := newSessionFixture(t)
	exp := f.now.Add(2 * time.Hour).Truncate(time.Second)
	token := signedToken(t, exp)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: token}, nil)

	sess, err := f.svc.Login(context.Background(), model.LoginInput{Email: "a", Password: "b"})
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.Equal(exp), "expires %v, want %v", sess.ExpiresAt, exp)
}

func TestSessionService_ExpiredTokenRefused(t *testing.T) {
	f := newSessionFixture(t)
	token := signedToken(t, f.now.Add(-time.Minute))
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: token}, nil)

	_, err := f.svc.Login(context.Background(), model.LoginInput{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	got, ok := tokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = tokenExpiry("not-a-jwt")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = tokenExpiry(noExp)
	assert.False(t, ok)
}

func TestSessionService_ResolveAndExpire(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: "t"}, nil)

	sess, err := f.svc.Login(ctx, model.LoginInput{Email: "a", Password: "b"})
	require.NoError(t, err)

	got := f.svc.Resolve(ctx, sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)

	assert.Nil(t, f.svc.Resolve(ctx, ""))
	assert.Nil(t, f.svc.Resolve(ctx, "unknown"))

	f.now = sess.ExpiresAt.Add(time.Second)
	assert.Nil(t, f.svc.Resolve(ctx, sess.ID))
	assert.Equal(t, []SessionEvent{SessionLogin, SessionExpired}, f.listener.names())

	_, err = f.store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionService_ResolveMalformedIsLoggedOut(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Save(ctx, domainauth.Session{
		ID:        "tokenless",
		UserID:    "u1",
		ExpiresAt: f.now.Add(time.Hour),
	}))

	assert.Nil(t, f.svc.Resolve(ctx, "tokenless"))
	assert.False(t, domainauth.IsLoggedIn(f.svc.Resolve(ctx, "tokenless")))
}

func TestSessionService_ResolveStoreFailureIsLoggedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	svc := NewSessionService(SessionServiceOptions{Sessions: store})

	store.EXPECT().Get(gomock.Any(), "s1").Return(domainauth.Session{}, errors.New("redis down"))

	assert.Nil(t, svc.Resolve(context.Background(), "s1"))
}

func TestSessionService_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockGigglitAPI(ctrl)
	store := mocks.NewMockSessionStore(ctrl)
	svc := NewSessionService(SessionServiceOptions{API: api, Sessions: store})

	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: "t"}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	sess, err := svc.Login(context.Background(), model.LoginInput{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.True(t, apperrors.IsInternal(err))
	assert.Equal(t, apperrors.GenericMessage, apperrors.UserMessage(err))
}

func TestSessionService_Logout(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: "t"}, nil)

	sess, err := f.svc.Login(ctx, model.LoginInput{Email: "a", Password: "b"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, sess.ID))
	assert.Nil(t, f.svc.Resolve(ctx, sess.ID))
	assert.Equal(t, []SessionEvent{SessionLogin, SessionLogout}, f.listener.names())

	require.NoError(t, f.svc.Logout(ctx, ""))
	require.NoError(t, f.svc.Logout(ctx, sess.ID))
	assert.Len(t, f.listener.events, 2, "logging out twice publishes once")
}

func TestSessionService_ListenersInRegistrationOrder(t *testing.T) {
	f := newSessionFixture(t)
	var order []string
	f.svc.Subscribe(SessionListenerFunc(func(context.Context, SessionTransition) { order = append(order, "second") }))
	f.svc.Subscribe(SessionListenerFunc(func(context.Context, SessionTransition) { order = append(order, "third") }))
	f.svc.Subscribe(nil)

	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Token: "t"}, nil)
	_, err := f.svc.Login(context.Background(), model.LoginInput{Email: "a", Password: "b"})
	require.NoError(t, err)

	assert.Len(t, f.listener.events, 1)
	assert.Equal(t, []string{"second", "third"}, order)
}
