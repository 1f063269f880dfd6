package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gigglit/gigglit-web/config"
	"github.com/gigglit/gigglit-web/internal/observability/metrics"
	"github.com/gigglit/gigglit-web/internal/observability/statsd"
)

// NewMetrics builds the StatsD client and the recorder on top of it. When
// metrics are disabled both are usable and drop everything.
func NewMetrics(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, *metrics.Recorder, error) {
	client, err := statsd.NewClient(ctx, statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	if logger != nil && client.Enabled() {
		logger.InfoContext(ctx, "statsd metrics enabled", "addr", cfg.StatsdAddress, "prefix", cfg.Prefix)
	}
	return client, metrics.NewRecorder(client), nil
}
