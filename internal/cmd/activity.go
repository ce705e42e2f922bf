package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"miniblog/internal/activity"
	"miniblog/internal/cmd/flags"
	"miniblog/internal/metrics"
	"miniblog/internal/nats"
)

var activityCmd = &cli.Command{
	Name:  "activity",
	Usage: "Consume reaction events from NATS JetStream and keep per-publication snapshots",
	Flags: []cli.Flag{
		flags.NATSURL,
		flags.NATSInit,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&nats.NATS{}),
			pal.Provide(&activity.Consumer{}),
			pal.Provide(&metrics.Server{}),
		)
	},
}
