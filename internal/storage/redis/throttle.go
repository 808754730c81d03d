// redis - счётчик заявок с фиксированным окном в Redis.
// Общий для всех реплик сайта, в отличие от memory.Throttle.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/vocal-site/internal/storage"
)

// Throttle - storage.Throttle поверх INCR + EXPIRE.
type Throttle struct {
	rdb    *redis.Client
	prefix string
	max    int64
	window time.Duration
}

var _ storage.Throttle = (*Throttle)(nil)

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой - используется "vocal:throttle:".
func New(ctx context.Context, redisURL, prefix string, max int64, window time.Duration) (*Throttle, error) {
	const op = "storage.redis.New"

	if prefix == "" {
		prefix = "vocal:throttle:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
	}

	return &Throttle{rdb: rdb, prefix: prefix, max: max, window: window}, nil
}

func (t *Throttle) key(k string) string { return t.prefix + k }

// Allow: INCR и TTL в одной транзакции; окно открывает первый инкремент.
// Ключ без TTL (первое событие или потерянный EXPIRE) получает TTL окна.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	const op = "storage.redis.Allow"

	k := t.key(key)

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)

	_, err := t.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if ttl.Val() < 0 {
		if err := t.rdb.Expire(ctx, k, t.window).Err(); err != nil {
			return false, fmt.Errorf("%s: expire: %w", op, err)
		}
	}

	return incr.Val() <= t.max, nil
}

// Close закрывает клиент Redis.
func (t *Throttle) Close() error {
	return t.rdb.Close()
}
