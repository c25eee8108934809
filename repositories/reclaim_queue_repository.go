package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const reclaimQueueKey = "reclaim:pending"

// RedisReclaimQueue is a durable log of paths awaiting physical deletion.
// Entries are pushed only after the owning metadata transaction commits,
// so anything in the list is safe to unlink.
type RedisReclaimQueue struct {
	client *redis.Client
}

func NewRedisReclaimQueue(client *redis.Client) *RedisReclaimQueue {
	return &RedisReclaimQueue{client: client}
}

func (q *RedisReclaimQueue) Push(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(paths))
	for _, p := range paths {
		values = append(values, p)
	}
	return q.client.RPush(ctx, reclaimQueueKey, values...).Err()
}

func (q *RedisReclaimQueue) Pop(ctx context.Context, timeout time.Duration) (string, error) {
	result, err := q.client.BLPop(ctx, timeout, reclaimQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	// BLPop returns [key, value].
	if len(result) < 2 {
		return "", nil
	}
	return result[1], nil
}
