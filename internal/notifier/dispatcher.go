package notifier

import (
	"context"
	"time"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/queue"
)

// QueueDispatcher publishes notifications onto the redis stream the
// notifier workers consume. It satisfies the dispatcher interface the
// delivery service depends on.
type QueueDispatcher struct {
	queue *queue.Queue
}

func NewQueueDispatcher(q *queue.Queue) *QueueDispatcher {
	return &QueueDispatcher{queue: q}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, n *model.Notification) error {
	if n.QueuedAt.IsZero() {
		n.QueuedAt = time.Now()
	}
	_, err := d.queue.PublishJSON(ctx, n, map[string]string{
		"orderId": n.OrderID,
		"status":  n.Status,
	})
	return err
}
