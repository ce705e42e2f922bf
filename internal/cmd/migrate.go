package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"miniblog/internal/cmd/flags"
	"miniblog/internal/core"
	"miniblog/internal/persistence"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Apply or roll back database migrations",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply every pending migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return migrate(ctx, c, pal.Provide(&persistence.MigrationUpRunner{}))
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the latest migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return migrate(ctx, c, pal.Provide(&persistence.MigrationDownRunner{}))
			},
		},
	},
	Action: func(_ context.Context, c *cli.Command) error {
		return errors.New("expected a direction, one of: up, down")
	},
}

func migrate(ctx context.Context, c *cli.Command, runner pal.ServiceDef) error {
	return run(ctx, c,
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.Migrator](&persistence.Migrator{}),
		runner,
	)
}
