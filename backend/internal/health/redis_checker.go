package health

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// RedisChecker verifies connectivity to the Redis instance backing the
// command queue and the event-log mirror sink.
type RedisChecker struct {
	Client *redis.Client
}

func (r *RedisChecker) Name() string { return "redis" }

func (r *RedisChecker) Check(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return r.Client.Ping(ctx).Err()
}
