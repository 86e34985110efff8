package worker

import (
	"context"
	"sync"
	"time"

	"reviewdesk/internal/amqp"
	"reviewdesk/internal/cache"
	applog "reviewdesk/internal/log"
)

const defaultTrailSize = 1000

// AuditStats counts the review events the worker has seen.
type AuditStats struct {
	Approved int
	Rejected int
	Stale    int
	Tracked  int
}

// AuditWorker consumes review events and keeps an audit trail of the latest
// event per expense.
type AuditWorker struct {
	logger *applog.Logger
	trail  *cache.LRUCache[amqp.ReviewEvent]

	mu    sync.Mutex
	stats AuditStats
}

// NewAuditWorker keeps at most trailSize expenses in the trail; entries older
// than trailTTL are dropped by CleanExpired. A zero TTL keeps entries forever.
func NewAuditWorker(logger *applog.Logger, trailSize int, trailTTL time.Duration) *AuditWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if trailSize <= 0 {
		trailSize = defaultTrailSize
	}
	return &AuditWorker{
		logger: logger.WithComponent(applog.ComponentWorker),
		trail:  cache.NewLRUCache[amqp.ReviewEvent](trailSize, trailTTL),
	}
}

// HandleReviewEvent processes a single review event from AMQP. Events older
// than the last one recorded for the same expense are logged and dropped.
func (w *AuditWorker) HandleReviewEvent(ctx context.Context, ev *amqp.ReviewEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.trail.Get(ev.ID); ok && ev.Timestamp.Before(last.Timestamp) {
		w.stats.Stale++
		w.logger.WarnContext(ctx, "Skipping stale review event",
			applog.FieldExpenseID, ev.ID,
			applog.FieldAction, ev.Action,
			"event_time", ev.Timestamp,
			"last_time", last.Timestamp)
		return nil
	}

	w.trail.Set(ev.ID, *ev)
	switch ev.Action {
	case "approve":
		w.stats.Approved++
	case "reject":
		w.stats.Rejected++
	}

	w.logger.InfoContext(ctx, "Expense reviewed",
		applog.FieldExpenseID, ev.ID,
		applog.FieldAction, ev.Action,
		applog.FieldStatus, ev.Status,
		applog.FieldAmountCents, ev.AmountCents,
		applog.FieldComment, ev.Comment,
		"event_time", ev.Timestamp)
	return nil
}

// Last returns the most recent event recorded for id.
func (w *AuditWorker) Last(id string) (amqp.ReviewEvent, bool) {
	return w.trail.Get(id)
}

// CleanExpired drops trail entries past their TTL. It satisfies cache.Cleaner.
func (w *AuditWorker) CleanExpired() int {
	return w.trail.CleanExpired()
}

func (w *AuditWorker) Stats() AuditStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.stats
	s.Tracked = w.trail.Size()
	return s
}

// LogSummary writes the running totals; the worker command calls it on a ticker.
func (w *AuditWorker) LogSummary(ctx context.Context) {
	s := w.Stats()
	w.logger.InfoContext(ctx, "Audit summary",
		"approved", s.Approved,
		"rejected", s.Rejected,
		"stale", s.Stale,
		"tracked", s.Tracked)
}
