// Package queue puts an asynq-backed command queue in front of the
// kernel engine for callers that want to submit commands asynchronously
// instead of blocking on Engine.Execute directly.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/config"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/pkg/logger"
)

// TaskTypeCommand is the single asynq task type this queue ever enqueues.
// Every kernel command, regardless of its own Type, rides the same asynq
// task type; the kernel command type lives inside the payload.
const TaskTypeCommand = "kernel:command"

// CommandPayload is the wire shape of a queued command.
type CommandPayload struct {
	Type       string                 `json:"type"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	ActorID    string                 `json:"actorId,omitempty"`
	TargetIDs  []string               `json:"targetIds,omitempty"`
}

// CommandQueue enqueues commands for out-of-band execution against a
// single kernel.Engine. Because Engine.Execute already serializes all
// command execution internally, the server side only ever needs
// concurrency 1 — queuing adds durability and backpressure, not
// parallel throughput.
type CommandQueue struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
	engine *kernel.Engine
	log    *logger.Logger
	queue  string
}

// NewCommandQueue constructs a queue bound to engine and backed by the
// Redis instance described in cfg.
func NewCommandQueue(cfg *config.Config, engine *kernel.Engine, log *logger.Logger) (*CommandQueue, error) {
	if engine == nil {
		return nil, fmt.Errorf("queue: engine is required")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	serverConfig := asynq.Config{
		Concurrency: cfg.Queue.Concurrency,
		Queues: map[string]int{
			cfg.Queue.QueueName: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.WithField("task_type", task.Type()).WithError(err).Error().Msg("command task failed")
		}),
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			return time.Duration(n*n) * time.Second
		},
	}

	server := asynq.NewServer(redisOpt, serverConfig)
	mux := asynq.NewServeMux()

	q := &CommandQueue{client: client, server: server, mux: mux, engine: engine, log: log, queue: cfg.Queue.QueueName}
	mux.HandleFunc(TaskTypeCommand, q.handle)
	return q, nil
}

// Enqueue submits a command for asynchronous execution and returns the
// asynq task ID assigned to it.
func (q *CommandQueue) Enqueue(ctx context.Context, payload CommandPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("queue: marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeCommand, data)
	info, err := q.client.EnqueueContext(ctx, task, asynq.Queue(q.queue), asynq.MaxRetry(0))
	if err != nil {
		return "", fmt.Errorf("queue: enqueue: %w", err)
	}
	return info.ID, nil
}

// handle decodes a queued command and runs it against the bound engine.
// Only a payload that cannot be decoded returns an error; it is reported
// through the server's ErrorHandler, and since Enqueue submits tasks with
// MaxRetry(0) it is not retried. A command the engine rejects (any
// non-OK CommandResult) is logged with its error code and the handler
// returns nil.
func (q *CommandQueue) handle(ctx context.Context, task *asynq.Task) error {
	var payload CommandPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("queue: decode payload: %w", err)
	}

	targets := make([]kernel.EntityID, len(payload.TargetIDs))
	for i, id := range payload.TargetIDs {
		targets[i] = kernel.EntityID(id)
	}

	result := q.engine.Execute(ctx, payload.Type, payload.Parameters, kernel.EntityID(payload.ActorID), targets...)
	if !result.OK {
		q.log.WithField("command", payload.Type).WithField("code", string(result.Error.Code)).Warn().Msg("queued command rejected")
	}
	return nil
}

// Start begins processing queued commands. Blocks until Shutdown is
// called or the server hits an unrecoverable error.
func (q *CommandQueue) Start() error {
	q.log.Info().Msg("starting command queue processor")
	return q.server.Run(q.mux)
}

// Shutdown stops accepting new tasks, waits for in-flight ones to
// finish, and closes the client.
func (q *CommandQueue) Shutdown() error {
	q.log.Info().Msg("stopping command queue processor")
	q.server.Shutdown()
	return q.client.Close()
}

// Inspector returns a fresh asynq.Inspector against the same Redis
// connection, for health checks and queue introspection.
func (q *CommandQueue) Inspector(cfg *config.Config) *asynq.Inspector {
	return asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
