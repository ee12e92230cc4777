package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb backs the win ledger's sorted set.
var Rdb *redis.Client

// InitRedis connects and pings with a bounded deadline, so a dead
// redis fails startup instead of hanging it.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return Rdb.Ping(ctx).Err()
}
