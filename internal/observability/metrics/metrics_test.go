package metrics

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	kind  string
	name  string
	value any
	tags  map[string]string
}

type fakeSink struct {
	mu   sync.Mutex
	seen []recorded
}

func (f *fakeSink) Count(name string, value int64, tags map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recorded{kind: "count", name: name, value: value, tags: tags})
}

func (f *fakeSink) Timing(name string, value time.Duration, tags map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recorded{kind: "timing", name: name, value: value, tags: tags})
}

func TestObserveCall(t *testing.T) {
	t.Run("success records only a timing", func(t *testing.T) {
		sink := &fakeSink{}
		NewRecorder(sink).ObserveCall("list_posts", http.StatusOK, nil, 20*time.Millisecond)

		require.Len(t, sink.seen, 1)
		assert.Equal(t, recorded{
			kind: "timing", name: "api.request", value: 20 * time.Millisecond,
			tags: map[string]string{"op": "list_posts", "status": "2xx"},
		}, sink.seen[0])
	})

	t.Run("failure adds an error counter", func(t *testing.T) {
		sink := &fakeSink{}
		err := apperrors.FromStatus(http.StatusNotFound, "Post not found")
		NewRecorder(sink).ObserveCall("get post", http.StatusNotFound, err, time.Millisecond)

		require.Len(t, sink.seen, 2)
		assert.Equal(t, "4xx", sink.seen[0].tags["status"])
		assert.Equal(t, "api.error", sink.seen[1].name)
		assert.Equal(t, map[string]string{"op": "get_post", "code": "not_found"}, sink.seen[1].tags)
	})

	t.Run("transport failure", func(t *testing.T) {
		sink := &fakeSink{}
		NewRecorder(sink).ObserveCall("login", 0, errors.New("dial tcp: refused"), time.Second)

		require.Len(t, sink.seen, 2)
		assert.Equal(t, "none", sink.seen[0].tags["status"])
		assert.Equal(t, "internal", sink.seen[1].tags["code"])
	})
}

func TestSessionChanged(t *testing.T) {
	sink := &fakeSink{}
	rec := NewRecorder(sink)

	rec.SessionChanged(t.Context(), service.SessionTransition{
		Event:   service.SessionLogin,
		Session: domainauth.Session{Role: model.RoleAdmin},
	})
	rec.SessionChanged(t.Context(), service.SessionTransition{Event: service.SessionExpired})

	require.Len(t, sink.seen, 2)
	assert.Equal(t, "session.login", sink.seen[0].name)
	assert.Equal(t, map[string]string{"role": "admin"}, sink.seen[0].tags)
	assert.Equal(t, "session.expired", sink.seen[1].name)
	assert.Equal(t, "unknown", sink.seen[1].tags["role"])
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObserveCall("x", 200, nil, time.Second)
		rec.SessionChanged(t.Context(), service.SessionTransition{})
		NewRecorder(nil).ObserveCall("x", 500, errors.New("boom"), time.Second)
	})
}
