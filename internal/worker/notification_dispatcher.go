package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// NotificationFacade exposes the outbox operations required by the worker.
type NotificationFacade interface {
	ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	DeliverNotification(ctx context.Context, n model.Notification) error
}

// NotificationDispatcher polls the notification outbox and delivers claimed
// records concurrently. A record whose delivery fails stays undelivered and is
// claimed again once its lease runs out.
type NotificationDispatcher struct {
	facade       NotificationFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(facade NotificationFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &NotificationDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Notification, batchSize*workers),
	}
}

// Start launches background delivery.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.claimAndDispatch(ctx)
		}
	}
}

func (d *NotificationDispatcher) claimAndDispatch(ctx context.Context) {
	batch, err := d.facade.ClaimNotifications(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("claim notifications failed", slog.String("error", err.Error()))
		return
	}
	for _, n := range batch {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- n:
		}
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.facade.DeliverNotification(ctx, n); err != nil {
				d.logger.Warn("notification delivery failed",
					slog.String("notification_id", n.ID.String()),
					slog.String("order_id", n.OrderID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
