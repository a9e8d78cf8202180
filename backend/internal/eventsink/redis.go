// Package eventsink mirrors the kernel's committed effect log into Redis
// so external consumers (a UI, an audit trail, a ruleset-specific
// projector) can follow committed effects without touching the engine.
package eventsink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/config"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/pkg/logger"
)

// StreamName is the Redis stream every committed envelope is appended to.
const StreamName = "kernel:effects"

// RedisSink implements kernel.Observer by XADDing every committed
// envelope to a Redis stream. It never blocks or retries commit
// processing: a write failure is logged by the engine, not surfaced to
// the command caller, matching the engine's synchronous-but-advisory
// observer contract.
type RedisSink struct {
	client *redis.Client
	log    *logger.Logger
	stream string
}

// NewRedisSink connects to Redis and returns a sink ready to register
// with Engine.AddObserver.
func NewRedisSink(cfg *config.Config, log *logger.Logger) (*RedisSink, error) {
	if cfg == nil {
		return nil, fmt.Errorf("eventsink: redis config is required")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("eventsink: connect to redis: %w", err)
	}

	return &RedisSink{client: client, log: log, stream: StreamName}, nil
}

// OnCommit implements kernel.Observer.
func (s *RedisSink) OnCommit(ctx context.Context, envelope kernel.EffectEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("eventsink: marshal envelope: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"command": envelope.Command,
			"payload": string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("eventsink: xadd: %w", err)
	}

	s.log.WithField("command", envelope.Command).Debug().Msg("mirrored committed envelope to redis")
	return nil
}

// HealthCheck verifies the Redis connection backing this sink is alive.
func (s *RedisSink) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client exposes the underlying Redis client so a health.RedisChecker can
// probe the same connection this sink writes through.
func (s *RedisSink) Client() *redis.Client {
	return s.client
}

// Close releases the underlying Redis connection.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
