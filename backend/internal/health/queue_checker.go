package health

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// QueueChecker verifies the asynq queue backing asynchronous command
// submission is reachable and serving the expected queue.
type QueueChecker struct {
	Inspector *asynq.Inspector
	QueueName string
}

func (q *QueueChecker) Name() string { return "queue" }

func (q *QueueChecker) Check(ctx context.Context) error {
	if q.Inspector == nil {
		return fmt.Errorf("queue inspector not initialized")
	}
	info, err := q.Inspector.GetQueueInfo(q.QueueName)
	if err != nil {
		return fmt.Errorf("queue stats unavailable: %w", err)
	}
	if info.Paused {
		return fmt.Errorf("queue %q is paused", q.QueueName)
	}
	return nil
}
