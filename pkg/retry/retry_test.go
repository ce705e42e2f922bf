package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"miniblog/pkg/retry"
)

var errTest = errors.New("test error")

func failing(times int, calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		if *calls <= times {
			return errTest
		}
		return nil
	}
}

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(t.Context(), retry.Policy{}, failing(3, &calls))

		require.NoError(t, err)
		require.Equal(t, 4, calls)
	})

	t.Run("should retry gives up", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(t.Context(), retry.Policy{
			ShouldRetry: func(_ error, attempt int) bool {
				return attempt < 2
			},
		}, failing(10, &calls))

		require.ErrorIs(t, err, errTest)
		require.Equal(t, 2, calls)
	})

	t.Run("error rate gives up", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(t.Context(), retry.Policy{MaxRate: 5}, failing(1000, &calls))

		require.ErrorIs(t, err, errTest)
		require.Equal(t, 6, calls)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		err := retry.Do(ctx, retry.Policy{Delay: 10 * time.Millisecond}, failing(1000, &calls))
		require.ErrorIs(t, err, context.Canceled)
		require.Positive(t, calls)
	})
}

func TestPolicy_Validate(t *testing.T) {
	t.Parallel()

	t.Run("reachable rate", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, retry.Policy{Delay: 100 * time.Millisecond, MaxRate: 5}.Validate())
		require.NoError(t, retry.Policy{Delay: time.Second}.Validate())
	})

	t.Run("rate hidden behind the delay", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(t.Context(), retry.Policy{Delay: time.Second, MaxRate: 5}, failing(1, &calls))

		require.ErrorIs(t, err, retry.ErrInvalidPolicy)
		require.Zero(t, calls)
	})
}
