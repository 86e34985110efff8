package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"reviewdesk/internal/core"
	applog "reviewdesk/internal/log"
)

func TestForApproveAndReject(t *testing.T) {
	e := core.Expense{ID: "1", Status: core.StatusApproved}
	n := ForApprove(e)
	if n.Kind != KindSuccess || n.Message != MessageApproved || n.Action != ActionApprove {
		t.Fatalf("approve notification=%+v", n)
	}
	n = ForReject(e)
	if n.Kind != KindError || n.Message != MessageRejected || n.Action != ActionReject {
		t.Fatalf("reject notification=%+v", n)
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	var calls int
	ok := Func(func(context.Context, Notification) error { calls++; return nil })
	boom := errors.New("boom")
	bad := Func(func(context.Context, Notification) error { calls++; return boom })

	err := Multi{ok, nil, bad, ok}.Notify(context.Background(), Notification{})
	if calls != 3 {
		t.Fatalf("calls=%d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined boom, got %v", err)
	}
	if err := (Multi{ok}).Notify(context.Background(), Notification{}); err != nil {
		t.Fatalf("unexpected err %v", err)
	}
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := applog.New(applog.Config{Handler: slog.NewTextHandler(&buf, nil), Component: "test"})
	n := ForReject(core.Expense{ID: "42", Status: core.StatusRejected, ApproverComment: "Needs receipt", Amount: core.Money{Cents: 500}})

	if err := NewLogger(l).Notify(context.Background(), n); err != nil {
		t.Fatalf("notify: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Expense rejected", "expense_id=42", "action=reject", "kind=error", `comment="Needs receipt"`, "component=notify"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %q: %s", want, out)
		}
	}
}
