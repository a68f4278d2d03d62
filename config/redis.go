package config

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis dials addr and checks it answers. Redis only backs the record
// cache and the reminder lock, so callers treat a failure as "run without".
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, *redislock.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return rdb, redislock.New(rdb), nil
}
