package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gigglit/gigglit-web/config"
	"github.com/gigglit/gigglit-web/internal/adapters/memory"
	"github.com/gigglit/gigglit-web/internal/bootstrap"
	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	"github.com/gigglit/gigglit-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adaID = model.ID("000000000000000000000001")
	bobID = model.ID("000000000000000000000002")
)

func newTestContext(t *testing.T, store bootstrap.SessionBackend) (*commandContext, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.AppConfig{API: config.APIConfig{BaseURL: "http://localhost:3000"}}
	cfg.Sanitize()
	return &commandContext{
		Ctx:    t.Context(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Out:    &out,
		openSessions: func(context.Context) (bootstrap.SessionBackend, func() error, error) {
			return store, nil, nil
		},
	}, &out
}

func seededStore(t *testing.T) *memory.SessionStore {
	t.Helper()
	store := memory.NewSessionStore()
	now := time.Now()
	for i, s := range []domainauth.Session{
		{ID: "s-ada-1", UserID: adaID, Name: "Ada", Role: model.RoleAdmin, Token: "secret-token-1"},
		{ID: "s-bob", UserID: bobID, Name: "Bob", Role: model.RoleUser, Token: "secret-token-2"},
		{ID: "s-ada-2", UserID: adaID, Name: "Ada", Role: model.RoleAdmin, Token: "secret-token-3"},
	} {
		s.CreatedAt = now.Add(time.Duration(i) * time.Second)
		s.ExpiresAt = now.Add(time.Hour)
		require.NoError(t, store.Save(t.Context(), s))
	}
	return store
}

func TestListSessions_Table(t *testing.T) {
	cmdCtx, out := newTestContext(t, seededStore(t))

	require.NoError(t, runListSessions(cmdCtx, nil))

	text := out.String()
	assert.Contains(t, text, "ID")
	assert.Contains(t, text, "s-ada-1")
	assert.Contains(t, text, "s-bob")
	assert.Contains(t, text, "Total sessions: 3")
	assert.NotContains(t, text, "secret-token")
}

func TestListSessions_FilteredJSON(t *testing.T) {
	cmdCtx, out := newTestContext(t, seededStore(t))

	require.NoError(t, runListSessions(cmdCtx, []string{"--json", "--user", adaID.String()}))

	var rows []sessionRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "s-ada-1", rows[0].ID)
	assert.Equal(t, "s-ada-2", rows[1].ID)
	assert.NotContains(t, out.String(), "secret-token")
}

func TestParseSessionsFlags(t *testing.T) {
	opts, err := parseSessionsFlags([]string{"--user", " 00000000000000000000000A ", "--json"})
	require.NoError(t, err)
	assert.Equal(t, model.ID("00000000000000000000000a"), opts.UserID)
	assert.True(t, opts.JSON)

	_, err = parseSessionsFlags([]string{"extra"})
	assert.Error(t, err)
}

func TestListSessions_Empty(t *testing.T) {
	cmdCtx, out := newTestContext(t, memory.NewSessionStore())

	require.NoError(t, runListSessions(cmdCtx, nil))

	assert.Equal(t, "(no sessions)\n", out.String())
}

func TestRevoke(t *testing.T) {
	t.Run("single session", func(t *testing.T) {
		store := seededStore(t)
		cmdCtx, out := newTestContext(t, store)

		require.NoError(t, runRevoke(cmdCtx, []string{"s-bob"}))

		assert.Equal(t, "revoked 1 session(s)\n", out.String())
		left, err := store.List(t.Context())
		require.NoError(t, err)
		assert.Len(t, left, 2)
	})

	t.Run("every session of a user", func(t *testing.T) {
		store := seededStore(t)
		cmdCtx, out := newTestContext(t, store)

		require.NoError(t, runRevoke(cmdCtx, []string{"--user", adaID.String()}))

		assert.Equal(t, "revoked 2 session(s)\n", out.String())
		left, err := store.List(t.Context())
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, "s-bob", left[0].ID)
	})

	t.Run("argument errors", func(t *testing.T) {
		cmdCtx, _ := newTestContext(t, seededStore(t))

		assert.Error(t, runRevoke(cmdCtx, nil))
		assert.Error(t, runRevoke(cmdCtx, []string{"--user", adaID.String(), "s-bob"}))
		assert.Error(t, runRevoke(cmdCtx, []string{"s-bob", "--user", adaID.String()}), "a flag after the id is still read")
		assert.Error(t, runRevoke(cmdCtx, []string{"s-bob", "s-ada-1"}))
	})

	t.Run("user id is matched canonically", func(t *testing.T) {
		store := seededStore(t)
		cmdCtx, out := newTestContext(t, store)

		require.NoError(t, runRevoke(cmdCtx, []string{"--user", " " + strings.ToUpper(bobID.String()) + " "}))

		assert.Equal(t, "revoked 1 session(s)\n", out.String())
	})
}

func TestOpenSessionsFailure(t *testing.T) {
	cmdCtx, _ := newTestContext(t, nil)
	cmdCtx.openSessions = func(context.Context) (bootstrap.SessionBackend, func() error, error) {
		return nil, nil, errors.New("redis down")
	}

	assert.ErrorContains(t, runListSessions(cmdCtx, nil), "redis down")
	assert.ErrorContains(t, runRevoke(cmdCtx, []string{"s-1"}), "redis down")
}

func TestConnectSessions_MemoryStoreIsRefused(t *testing.T) {
	cmdCtx, _ := newTestContext(t, nil)
	cmdCtx.Config.Session.Store = config.SessionStoreMemory

	_, _, err := cmdCtx.connectSessions(t.Context())

	assert.ErrorContains(t, err, "not reachable from the CLI")
}

func TestPing(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddTopic("News")
	cmdCtx, out := newTestContext(t, nil)
	cmdCtx.Config.API.BaseURL = backend.URL()

	require.NoError(t, runPing(cmdCtx, nil))

	assert.Contains(t, out.String(), "ok: "+backend.URL())
	assert.Contains(t, out.String(), "(1 topics)")

	backend.FailNext(http.MethodGet, "/topics", http.StatusBadGateway, "down")
	assert.Error(t, runPing(cmdCtx, nil))
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	for name := range commands() {
		assert.Contains(t, buf.String(), name)
	}
}
