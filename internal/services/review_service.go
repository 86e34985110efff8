package services

import (
	"context"
	"fmt"
	"time"

	"reviewdesk/internal/core"
	applog "reviewdesk/internal/log"
	"reviewdesk/internal/metrics"
	"reviewdesk/internal/notify"
	"reviewdesk/internal/store"
)

const notifyTimeout = 5 * time.Second

// Outcome is what a review action produced. Notification is nil when nothing
// changed.
type Outcome struct {
	Result       store.Result
	Notification *notify.Notification
}

// ReviewService orchestrates review actions across the store, the notifier
// and metrics.
type ReviewService struct {
	store    *store.Store
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *applog.Logger
	strict   bool
}

// Option customises a ReviewService.
type Option func(*ReviewService)

// WithStrictNotFound makes unknown ids return core.ErrNotFound instead of a
// silent no-op.
func WithStrictNotFound(strict bool) Option {
	return func(s *ReviewService) { s.strict = strict }
}

// WithMetrics records review counters and status gauges.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ReviewService) { s.metrics = m }
}

// WithLogger overrides the default logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *ReviewService) { s.logger = l }
}

func NewReviewService(st *store.Store, notifier notify.Notifier, opts ...Option) *ReviewService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	s := &ReviewService{
		store:    st,
		notifier: notifier,
		logger:   applog.New(applog.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentReview)
	if s.metrics != nil {
		s.metrics.ObserveSummary(st.View().Summary)
	}
	return s
}

// Approve moves id to approved.
func (s *ReviewService) Approve(ctx context.Context, id string) (Outcome, error) {
	res := s.store.Approve(id)
	return s.finish(ctx, notify.ActionApprove, id, res, notify.ForApprove)
}

// Reject moves id to rejected with comment, falling back to the default comment.
func (s *ReviewService) Reject(ctx context.Context, id, comment string) (Outcome, error) {
	res := s.store.Reject(id, comment)
	return s.finish(ctx, notify.ActionReject, id, res, notify.ForReject)
}

// View returns the current derived view.
func (s *ReviewService) View() store.View {
	return s.store.View()
}

// Expenses returns the current collection.
func (s *ReviewService) Expenses() core.Expenses {
	es, _ := s.store.Snapshot()
	return es
}

func (s *ReviewService) finish(ctx context.Context, action notify.Action, id string, res store.Result, build func(core.Expense) notify.Notification) (Outcome, error) {
	if !res.Changed {
		s.record(action, metrics.ResultNotFound)
		s.logger.WarnContext(ctx, "Review target not found",
			applog.FieldExpenseID, id,
			applog.FieldAction, string(action),
			applog.FieldErrorType, applog.ErrorTypeNotFound)
		if s.strict {
			return Outcome{Result: res}, fmt.Errorf("%s %q: %w", action, id, core.ErrNotFound)
		}
		return Outcome{Result: res}, nil
	}

	s.record(action, metrics.ResultChanged)
	if s.metrics != nil {
		s.metrics.ObserveSummary(s.store.View().Summary)
	}

	fields := applog.NewFields().
		WithExpense(res.Expense.ID, res.Expense.Amount.Cents, string(res.Expense.Status)).
		WithAction(string(action))
	fields[applog.FieldVersion] = res.Version
	s.logger.InfoContext(ctx, "Expense reviewed", fields.ToSlice()...)

	n := build(res.Expense)
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(nctx, n); err != nil {
		// The transition stands; delivery problems are only reported.
		if s.metrics != nil {
			s.metrics.NotifyFailures.WithLabelValues("review").Inc()
		}
		s.logger.ErrorContext(ctx, "Failed to deliver review notification",
			applog.FieldExpenseID, res.Expense.ID,
			applog.FieldAction, string(action),
			applog.FieldError, err)
	}
	return Outcome{Result: res, Notification: &n}, nil
}

func (s *ReviewService) record(action notify.Action, result string) {
	if s.metrics != nil {
		s.metrics.ReviewsTotal.WithLabelValues(string(action), result).Inc()
	}
}
