package audit

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"supply-chain-cli/internal/entity"
)

// RedisRecorder keeps the most recent write events in a capped Redis list,
// newest first.
type RedisRecorder struct {
	rdb   *redis.Client
	key   string
	limit int64
}

func NewRedisRecorder(rdb *redis.Client, key string, limit int64) *RedisRecorder {
	return &RedisRecorder{
		rdb:   rdb,
		key:   key,
		limit: limit,
	}
}

func (r *RedisRecorder) Record(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, r.key, eventJSON)
	pipe.LTrim(ctx, r.key, 0, r.limit-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisRecorder) Close() error {
	return r.rdb.Close()
}
