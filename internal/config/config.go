package config

import "time"

type Config struct {
	LogLevel string `flag:"log-level"`

	DatabaseURL string `flag:"database-url"`
	RedisURL    string `flag:"redis-url"`

	JWTSecret string        `flag:"jwt-secret"`
	JWTTTL    time.Duration `flag:"jwt-ttl"`

	ListenAddr  string `flag:"listen-addr"`
	MetricsAddr string `flag:"metrics-addr"`

	NATSURL         string `flag:"nats-url"`
	NATSInit        bool   `flag:"nats-init"`
	PublishActivity bool   `flag:"publish-activity"`
}
