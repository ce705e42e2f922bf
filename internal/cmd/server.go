package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"miniblog/internal/accounts"
	"miniblog/internal/activity"
	"miniblog/internal/api"
	"miniblog/internal/auth"
	"miniblog/internal/blocking"
	"miniblog/internal/cmd/flags"
	"miniblog/internal/core"
	"miniblog/internal/metrics"
	"miniblog/internal/publishing"
	"miniblog/internal/reacting"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Serve the HTTP API",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.RedisURL,
		flags.JWTSecret,
		flags.JWTTTL,
		flags.ListenAddr,
		flags.MetricsAddr,
		flags.NATSURL,
		flags.NATSInit,
		flags.PublishActivity,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistenceServices(),

			pal.Provide(&auth.Tokens{}),
			pal.Provide[core.TokenBlacklist](&auth.Blacklist{}),
			pal.Provide(&auth.Authenticator{}),

			pal.Provide(&accounts.Service{}),
			pal.Provide(&publishing.Service{}),
			pal.Provide(&reacting.Service{}),
			pal.Provide(&blocking.Service{}),
			activity.Provide(c.Bool(flags.PublishActivity.Name)),

			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
		)
	},
}
