package flags

import (
	"fmt"
	"slices"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var DatabaseURL = &cli.StringFlag{
	Name:     "database-url",
	Aliases:  []string{"d"},
	Usage:    "The Postgres connection string",
	Required: true,
	Sources:  cli.EnvVars("DATABASE_URL"),
}

var RedisURL = &cli.StringFlag{
	Name:    "redis-url",
	Usage:   "The URL of the Redis server holding revoked tokens",
	Value:   "redis://localhost:6379/0",
	Sources: cli.EnvVars("REDIS_URL"),
}

var JWTSecret = &cli.StringFlag{
	Name:     "jwt-secret",
	Usage:    "The HMAC secret used to sign access tokens",
	Required: true,
	Sources:  cli.EnvVars("JWT_SECRET"),
}

var JWTTTL = &cli.DurationFlag{
	Name:    "jwt-ttl",
	Usage:   "How long issued access tokens stay valid",
	Value:   24 * time.Hour,
	Sources: cli.EnvVars("JWT_TTL"),
	Validator: func(value time.Duration) error {
		if value <= 0 {
			return fmt.Errorf("jwt ttl must be positive, got %s", value)
		}
		return nil
	},
}

var ListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Usage:   "The address the HTTP API listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("LISTEN_ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The address serving /metrics and /health",
	Value:   ":9090",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var NATSInit = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create the stream and the key-value bucket",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var PublishActivity = &cli.BoolFlag{
	Name:        "publish-activity",
	Usage:       "Publish reaction toggles to NATS JetStream",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("PUBLISH_ACTIVITY"),
}
