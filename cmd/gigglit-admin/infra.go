package main

import (
	"context"
	"fmt"

	"github.com/gigglit/gigglit-web/internal/bootstrap"
)

// connectSessions opens the session store the web server is configured with.
// The memory store lives inside the server process, so the CLI can only
// manage Redis-backed sessions.
func (c *commandContext) connectSessions(ctx context.Context) (bootstrap.SessionBackend, func() error, error) {
	if !c.Config.UsesRedis() {
		return nil, nil, fmt.Errorf("session store %q is not reachable from the CLI", c.Config.Session.Store)
	}

	client, err := bootstrap.ConnectRedis(ctx, c.Config.Redis, c.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	store, err := bootstrap.NewSessionBackend(c.Config.Session, client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client.Close, nil
}
