package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"miniblog/internal/cmd/flags"
	"miniblog/internal/core"
)

var recountCmd = &cli.Command{
	Name:  "recount",
	Usage: "Rebuild like and dislike counters from the reaction ledger",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistenceServices(),
			pal.Provide(&recounter{}),
		)
	},
}

type recounter struct {
	Logger       *slog.Logger
	DB           core.DB
	Publications core.PublicationRepository
}

func (r *recounter) Run(ctx context.Context) error {
	return r.DB.Transaction(ctx, func(ctx context.Context) error {
		updated, err := r.Publications.Recount(ctx)
		if err != nil {
			return err
		}
		r.Logger.Info("Counters rebuilt", "publications", updated)
		return nil
	})
}
