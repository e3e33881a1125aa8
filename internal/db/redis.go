package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOpts carries the client settings of the redis tracking store.
// Zero values fall back to go-redis defaults, except DialTimeout.
type RedisOpts struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration // 5s when unset; also bounds the startup PING
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	ClientName   string
}

// NewRedisClient builds a client and fails fast when the server does not
// answer PING within DialTimeout.
func NewRedisClient(ctx context.Context, opts RedisOpts) (*redis.Client, error) {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ClientName:   opts.ClientName,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
