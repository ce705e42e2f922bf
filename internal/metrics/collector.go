package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pal"
	"gorm.io/gorm/schema"

	"miniblog/internal/core"
)

const collectInterval = 15 * time.Second

var (
	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "miniblog_table_estimated_count",
		Help: "Estimated record count for a table.",
	}, []string{"table"})

	tables = []schema.Tabler{core.User{}, core.Publication{}, core.Reaction{}, core.BlockedTag{}}
)

// Collector periodically exports PostgreSQL row estimates for every table.
type Collector struct {
	Logger *slog.Logger
	DB     core.DB
}

func (c *Collector) RunConfig() *pal.RunConfig {
	return &pal.RunConfig{Wait: false}
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Logger.Debug("Collecting metrics")
			for _, tabler := range tables {
				if err := c.collectTableEstimatedCount(ctx, tabler); err != nil {
					c.Logger.Warn("Failed to collect table count", "table", tabler.TableName(), "error", err)
				}
			}
		}
	}
}

func (c *Collector) collectTableEstimatedCount(ctx context.Context, tabler schema.Tabler) error {
	count, err := c.DB.EstimatedCount(ctx, tabler.TableName())
	if err != nil {
		return err
	}
	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
