package config

import "github.com/go-redis/redis/v8"

// NewRedisClient returns a client for the audit trail, or nil when no
// address is configured.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
}
