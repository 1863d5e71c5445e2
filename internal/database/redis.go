package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to Redis and returns the client. Redis only backs the
// per-IP rate limiter, so callers may run without it (the limiter fails open).
func ConnectRedis(redisURI string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Println("✅ Connected to Redis")
	return client, nil
}
