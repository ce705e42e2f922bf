package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPolicy = errors.New("invalid retry policy")

// Policy controls how Do retries a failing function.
type Policy struct {
	// ShouldRetry decides whether the failed attempt is retried. Nil retries every error.
	ShouldRetry func(err error, attempt int) bool
	// Delay is the pause between attempts.
	Delay time.Duration
	// MaxRate gives up once more than MaxRate errors happen within one second. Zero disables it.
	MaxRate int
}

// Validate rejects a MaxRate that the Delay makes impossible to reach.
func (p Policy) Validate() error {
	if p.MaxRate > 0 && p.Delay*time.Duration(p.MaxRate) >= time.Second {
		return fmt.Errorf("%w: %d errors never fit in one second with a %s delay", ErrInvalidPolicy, p.MaxRate+1, p.Delay)
	}
	return nil
}

// Do calls f until it succeeds, the policy gives up or ctx is canceled.
// The last error is returned when giving up, ctx.Err() when canceled.
func Do(ctx context.Context, policy Policy, f func(ctx context.Context) error) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	var errorTimestamps []time.Time
	attempt := 0

	for {
		err := f(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempt++

		if policy.ShouldRetry != nil && !policy.ShouldRetry(err, attempt) {
			return err
		}

		if policy.MaxRate > 0 {
			errorTimestamps = append(errorTimestamps, time.Now())
			if len(errorTimestamps) > policy.MaxRate+1 {
				errorTimestamps = errorTimestamps[1:]
			}

			first := errorTimestamps[0]
			last := errorTimestamps[len(errorTimestamps)-1]
			if len(errorTimestamps) > policy.MaxRate && last.Sub(first) < time.Second {
				return err
			}
		}

		if policy.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(policy.Delay):
			}
		}
	}
}
