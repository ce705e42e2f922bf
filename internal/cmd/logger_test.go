package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	for name, expected := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := parseLevel(name)
			require.NoError(t, err)
			require.Equal(t, expected, level)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := parseLevel("trace")
		require.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}
