package worker

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"reviewdesk/internal/amqp"
	"reviewdesk/internal/cache"
	applog "reviewdesk/internal/log"
)

func newTestWorker(buf *bytes.Buffer, size int) *AuditWorker {
	return NewAuditWorker(applog.New(applog.Config{Output: buf}), size, 0)
}

func TestHandleReviewEventRecordsTrail(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWorker(&buf, 10)
	ctx := context.Background()
	t0 := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	events := []*amqp.ReviewEvent{
		{ID: "1", Action: "approve", Status: "approved", AmountCents: 125000, Timestamp: t0},
		{ID: "2", Action: "reject", Status: "rejected", Comment: "Needs receipt", AmountCents: 45000, Timestamp: t0.Add(time.Second)},
		{ID: "1", Action: "reject", Status: "rejected", Comment: "No comment provided", AmountCents: 125000, Timestamp: t0.Add(2 * time.Second)},
	}
	for _, ev := range events {
		if err := w.HandleReviewEvent(ctx, ev); err != nil {
			t.Fatalf("handle %+v: %v", ev, err)
		}
	}

	last, ok := w.Last("1")
	if !ok || last.Status != "rejected" {
		t.Fatalf("last event for 1 = %+v, ok=%v", last, ok)
	}
	s := w.Stats()
	if s.Approved != 1 || s.Rejected != 2 || s.Stale != 0 || s.Tracked != 2 {
		t.Fatalf("stats = %+v", s)
	}
	if !strings.Contains(buf.String(), "expense_id=2") || !strings.Contains(buf.String(), "Needs receipt") {
		t.Fatalf("audit log missing fields: %s", buf.String())
	}
}

func TestHandleReviewEventSkipsStale(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWorker(&buf, 10)
	ctx := context.Background()
	t0 := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	_ = w.HandleReviewEvent(ctx, &amqp.ReviewEvent{ID: "3", Action: "reject", Status: "rejected", Timestamp: t0})
	if err := w.HandleReviewEvent(ctx, &amqp.ReviewEvent{ID: "3", Action: "approve", Status: "approved", Timestamp: t0.Add(-time.Minute)}); err != nil {
		t.Fatalf("stale event should not error: %v", err)
	}

	last, _ := w.Last("3")
	if last.Status != "rejected" {
		t.Fatalf("stale event overwrote trail: %+v", last)
	}
	if s := w.Stats(); s.Stale != 1 || s.Approved != 0 {
		t.Fatalf("stats = %+v", s)
	}
	if !strings.Contains(buf.String(), "Skipping stale review event") {
		t.Fatalf("missing stale warning")
	}
}

func TestTrailIsBounded(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWorker(&buf, 2)
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		_ = w.HandleReviewEvent(ctx, &amqp.ReviewEvent{ID: id, Action: "approve", Status: "approved", Timestamp: time.Now()})
	}
	if _, ok := w.Last("1"); ok {
		t.Fatal("oldest entry should be evicted")
	}
	if s := w.Stats(); s.Tracked != 2 {
		t.Fatalf("tracked = %d, want 2", s.Tracked)
	}

	w.LogSummary(ctx)
	if !strings.Contains(buf.String(), "Audit summary") {
		t.Fatal("missing summary log")
	}
}

func TestCleanExpiredWithManager(t *testing.T) {
	var buf bytes.Buffer
	w := NewAuditWorker(applog.New(applog.Config{Output: &buf}), 10, time.Millisecond)
	_ = w.HandleReviewEvent(context.Background(), &amqp.ReviewEvent{ID: "1", Action: "approve", Status: "approved", Timestamp: time.Now()})

	m := cache.NewManager()
	m.Register(w)
	time.Sleep(5 * time.Millisecond)

	if removed := m.CleanNow(); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if s := w.Stats(); s.Tracked != 0 {
		t.Fatalf("tracked = %d, want 0", s.Tracked)
	}
}
