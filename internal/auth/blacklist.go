package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"miniblog/internal/config"
)

const blacklistPrefix = "miniblog:blacklist:"

// Blacklist remembers revoked token ids in Redis until the tokens would have expired anyway.
type Blacklist struct {
	Logger *slog.Logger
	Config *config.Config

	client *redis.Client
}

// NewBlacklist wraps an existing client.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

func (b *Blacklist) Init(_ context.Context) error {
	b.Logger = b.Logger.With("component", "auth.Blacklist")

	opts, err := redis.ParseURL(b.Config.RedisURL)
	if err != nil {
		return err
	}
	b.client = redis.NewClient(opts)

	return nil
}

func (b *Blacklist) HealthCheck(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Blacklist) Shutdown(_ context.Context) error {
	return b.client.Close()
}

func (b *Blacklist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistPrefix+tokenID, "blacklisted", ttl).Err()
}

func (b *Blacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
