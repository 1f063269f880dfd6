// Package redis provides Redis-based adapters for gigglit-web.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultSessionPrefix namespaces session keys.
const DefaultSessionPrefix = "gigglit:session:"

const scanBatch = 200

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionLister = (*SessionStore)(nil)
)

// ErrNotFound is returned when a session is not found.
var ErrNotFound = ports.ErrSessionNotFound

// SessionStore is a Redis-based session store for production use.
// It handles TTL semantics automatically based on session ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, DefaultSessionPrefix)
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	sess, ok := s.decode(data)
	if !ok || sess.ID != id || sess.ExpiredAt(s.now()) {
		// Unreadable or stale records count as logged out; drop them.
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup session: %w", deleteErr)
		}
		if ok && sess.ID == id {
			return domainauth.Session{}, ports.ErrSessionExpired
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// List returns every readable, unexpired session under the store prefix.
// Cluster clients are scanned master by master; records are read with
// per-key GETs so keys may live in different hash slots.
func (s *SessionStore) List(ctx context.Context) ([]domainauth.Session, error) {
	keys, err := s.sessionKeys(ctx)
	if err != nil {
		return nil, err
	}
	return s.readSessions(ctx, keys)
}

func (s *SessionStore) sessionKeys(ctx context.Context) ([]string, error) {
	match := s.prefix + "*"
	cluster, ok := s.client.(*redis.ClusterClient)
	if !ok {
		return scanKeys(ctx, s.client, match)
	}

	var (
		mu   sync.Mutex
		keys []string
	)
	err := cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
		nodeKeys, err := scanKeys(ctx, node, match)
		if err != nil {
			return err
		}
		mu.Lock()
		keys = append(keys, nodeKeys...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// scanKeys walks one node's keyspace. SCAN may repeat keys; they are deduped.
func scanKeys(ctx context.Context, c redis.Cmdable, match string) ([]string, error) {
	seen := make(map[string]struct{})
	var keys []string
	iter := c.Scan(ctx, 0, match, scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func (s *SessionStore) readSessions(ctx context.Context, keys []string) ([]domainauth.Session, error) {
	out := make([]domainauth.Session, 0, len(keys))
	now := s.now()
	for len(keys) > 0 {
		chunk := keys[:min(scanBatch, len(keys))]
		keys = keys[len(chunk):]

		cmds := make([]*redis.StringCmd, len(chunk))
		_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
			for i, key := range chunk {
				cmds[i] = p.Get(ctx, key)
			}
			return nil
		})
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis get: %w", err)
		}

		for _, cmd := range cmds {
			// Keys that expired since the scan answer redis.Nil.
			data, err := cmd.Bytes()
			if err != nil {
				continue
			}
			sess, ok := s.decode(data)
			if !ok || sess.ExpiredAt(now) {
				continue
			}
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *SessionStore) decode(data []byte) (domainauth.Session, bool) {
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, false
	}
	if !sess.Valid() {
		return domainauth.Session{}, false
	}
	return sess, true
}
