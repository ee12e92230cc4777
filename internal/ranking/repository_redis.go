package ranking

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const rankingKey = "rk:wins"

type redisRepo struct {
	rdb *redis.Client
}

// NewRedisRepo keeps the tally in a redis sorted set so it survives
// restarts and can be shared by several server processes.
func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

func (r *redisRepo) AddWin(ctx context.Context, name string) error {
	return r.rdb.ZIncrBy(ctx, rankingKey, 1, name).Err()
}

func (r *redisRepo) Wins(ctx context.Context, name string) (int64, error) {
	score, err := r.rdb.ZScore(ctx, rankingKey, name).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

func (r *redisRepo) Top(ctx context.Context, n int) ([]Entry, error) {
	stop := int64(n) - 1
	if n <= 0 {
		stop = -1 // full range
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, rankingKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		name, _ := z.Member.(string)
		out = append(out, Entry{Name: name, Wins: int64(z.Score)})
	}
	return out, nil
}
