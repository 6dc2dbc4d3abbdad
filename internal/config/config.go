package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Queue     QueueConfig     `mapstructure:"queue"      validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// Token issuance happens in the authentication subsystem; this service only
// verifies bearer tokens signed with the shared secret.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// QueueConfig contains the notification queue producer settings.
type QueueConfig struct {
	// RedisAddr is the host:port of the Redis broker backing the queue.
	RedisAddr string `mapstructure:"redis_addr" validate:"required,hostname_port"`

	// RedisPassword is optional; empty means no AUTH.
	RedisPassword string `mapstructure:"redis_password"`

	// Name is the queue (Redis list) status-change jobs are pushed onto.
	Name string `mapstructure:"name" validate:"required"`
}

// RateLimitConfig contains the admission-control policy applied uniformly
// to the task surface.
type RateLimitConfig struct {
	// Limit is the number of requests admitted per identity per window.
	Limit int `mapstructure:"limit" validate:"required,gt=0"`

	// WindowMS is the window length in milliseconds.
	WindowMS int `mapstructure:"window_ms" validate:"required,gt=0"`
}

// Window returns the rate-limit window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}
