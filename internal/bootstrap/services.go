package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gigglit/gigglit-web/config"
	"github.com/gigglit/gigglit-web/internal/adapters/gigglitapi"
	"github.com/gigglit/gigglit-web/internal/adapters/memory"
	redisstore "github.com/gigglit/gigglit-web/internal/adapters/redis"
	"github.com/gigglit/gigglit-web/internal/observability/metrics"
	"github.com/gigglit/gigglit-web/internal/ports"
	"github.com/gigglit/gigglit-web/internal/service"
	"github.com/redis/go-redis/v9"
)

// SessionBackend is a session store that can also enumerate its sessions.
type SessionBackend interface {
	ports.SessionStore
	ports.SessionLister
}

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	API       *gigglitapi.Client
	Store     SessionBackend
	Sessions  *service.SessionService
	Feed      *service.FeedService
	Posts     *service.PostService
	Bookmarks *service.BookmarkService
	Topics    *service.TopicService
}

// ServiceDeps contains dependencies needed to create services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	// Transport overrides the backend client's base round tripper (tests).
	Transport http.RoundTripper
	// Metrics receives backend call and session metrics (optional).
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewSessionBackend picks the session store for cfg. A Redis store needs a
// connected client; the memory store is for development only.
func NewSessionBackend(cfg config.SessionConfig, client redis.UniversalClient) (SessionBackend, error) {
	switch cfg.Store {
	case config.SessionStoreMemory:
		return memory.NewSessionStore(), nil
	case config.SessionStoreRedis, "":
		if client == nil {
			return nil, errors.New("redis session store requires a redis client")
		}
		return redisstore.NewSessionStoreWithPrefix(client, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// NewServices creates and wires all services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	clientOpts := gigglitapi.ClientOptions{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          cfg.API.Timeout,
		Transport:        deps.Transport,
		BookmarkListExpr: cfg.API.BookmarkListExpr,
		Logger:           logger,
	}
	if deps.Metrics != nil {
		clientOpts.Metrics = deps.Metrics
	}
	client, err := gigglitapi.NewClient(clientOpts)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build gigglit api client: %w", err)
	}

	store, err := NewSessionBackend(cfg.Session, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		API:      client,
		Sessions: store,
		TTL:      cfg.Session.TTL,
		Logger:   logger,
	})
	sessions.Subscribe(service.LogSessionTransitions(logger))
	if deps.Metrics != nil {
		sessions.Subscribe(deps.Metrics)
	}

	return ServiceContainer{
		API:       client,
		Store:     store,
		Sessions:  sessions,
		Feed:      service.NewFeedService(service.FeedServiceOptions{API: client, Logger: logger}),
		Posts:     service.NewPostService(service.PostServiceOptions{API: client}),
		Bookmarks: service.NewBookmarkService(service.BookmarkServiceOptions{API: client, Logger: logger}),
		Topics:    service.NewTopicService(service.TopicServiceOptions{API: client}),
	}, nil
}
