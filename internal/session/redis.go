package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/travelviz/internal/config"
)

// Options builds client options from cfg. Settings left at zero keep the
// values carried by the URL.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if d := cfg.DialTimeout(); d > 0 {
		opts.DialTimeout = d
	}
	if d := cfg.OpTimeout(); d > 0 {
		opts.ReadTimeout = d
		opts.WriteTimeout = d
	}
	return opts, nil
}

// Connect creates the client shared by sessions and activity logs and
// verifies connectivity with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
