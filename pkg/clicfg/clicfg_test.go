package clicfg_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"miniblog/pkg/clicfg"
)

type testConfig struct {
	Name    string        `flag:"name"`
	Enabled bool          `flag:"enabled"`
	Count   int           `flag:"count"`
	Limit   uint          `flag:"limit"`
	Ratio   float64       `flag:"ratio"`
	TTL     time.Duration `flag:"ttl"`
	Ignored string
	hidden  string `flag:"name"`
}

func parse(t *testing.T, target any, args ...string) error {
	t.Helper()

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.BoolFlag{Name: "enabled"},
			&cli.IntFlag{Name: "count"},
			&cli.UintFlag{Name: "limit"},
			&cli.Float64Flag{Name: "ratio"},
			&cli.DurationFlag{Name: "ttl", Value: time.Minute},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, target)
		},
	}

	return cmd.Run(t.Context(), append([]string{"test"}, args...))
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("fills tagged fields", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig{}
		err := parse(t, &cfg,
			"--name", "miniblog",
			"--enabled",
			"--count", "3",
			"--limit", "7",
			"--ratio", "0.5",
			"--ttl", "2h",
		)
		require.NoError(t, err)

		require.Equal(t, "miniblog", cfg.Name)
		require.True(t, cfg.Enabled)
		require.Equal(t, 3, cfg.Count)
		require.Equal(t, uint(7), cfg.Limit)
		require.InEpsilon(t, 0.5, cfg.Ratio, 0.0001)
		require.Equal(t, 2*time.Hour, cfg.TTL)
		require.Empty(t, cfg.Ignored)
		require.Empty(t, cfg.hidden)
	})

	t.Run("uses flag defaults", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig{}
		require.NoError(t, parse(t, &cfg))

		require.Equal(t, time.Minute, cfg.TTL)
		require.False(t, cfg.Enabled)
	})

	t.Run("rejects non-pointer", func(t *testing.T) {
		t.Parallel()

		err := parse(t, testConfig{})
		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})

	t.Run("rejects pointer to non-struct", func(t *testing.T) {
		t.Parallel()

		s := "value"
		err := parse(t, &s)
		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})
}
