package store

import (
	"reflect"
	"testing"

	"reviewdesk/internal/core"
)

func seed() core.Expenses {
	return core.Expenses{
		{ID: "a", EmployeeName: "A", Amount: core.Money{Cents: 1000}, Date: core.NewDate(2025, 1, 1), Status: core.StatusPending},
		{ID: "b", EmployeeName: "B", Amount: core.Money{Cents: 2000}, Date: core.NewDate(2025, 1, 2), Status: core.StatusPending},
		{ID: "c", EmployeeName: "C", Amount: core.Money{Cents: 4000}, Date: core.NewDate(2025, 1, 3), Status: core.StatusApproved},
	}
}

func TestNewRejectsInvalidSeed(t *testing.T) {
	bad := seed()
	bad[1].ID = "a"
	if _, err := New(bad); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestNewCopiesSeed(t *testing.T) {
	in := seed()
	s, err := New(in)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	in[0].Status = core.StatusRejected
	es, _ := s.Snapshot()
	if es[0].Status != core.StatusPending {
		t.Fatalf("store shares caller's backing array")
	}
}

func TestApproveBumpsVersionAndKeepsOldSnapshot(t *testing.T) {
	s, _ := New(seed())
	old, v1 := s.Snapshot()

	res := s.Approve("a")
	if !res.Changed || res.Version != v1+1 {
		t.Fatalf("result=%+v", res)
	}
	if res.Expense.ID != "a" || res.Expense.Status != core.StatusApproved {
		t.Fatalf("expense=%+v", res.Expense)
	}
	if old[0].Status != core.StatusPending {
		t.Fatalf("old snapshot mutated")
	}
	cur, v2 := s.Snapshot()
	if v2 != res.Version || cur[0].Status != core.StatusApproved {
		t.Fatalf("snapshot not updated: v=%d status=%s", v2, cur[0].Status)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	s, _ := New(seed())
	before, v := s.Snapshot()
	res := s.Reject("zzz", "nope")
	if res.Changed || res.Version != v {
		t.Fatalf("unexpected change: %+v", res)
	}
	after, v2 := s.Snapshot()
	if v2 != v || !reflect.DeepEqual(before, after) {
		t.Fatalf("collection changed on unknown id")
	}
}

func TestViewMemoisedPerVersion(t *testing.T) {
	s, _ := New(seed())
	v1 := s.View()
	if v1.Summary.PendingCount != 2 || v1.Summary.AllTotal.Cents != 7000 {
		t.Fatalf("summary=%+v", v1.Summary)
	}
	_ = s.View()
	if st := s.CacheStats(); st.Hits != 1 {
		t.Fatalf("expected cache hit, stats=%+v", st)
	}

	s.Reject("b", "")
	v2 := s.View()
	if v2.Version == v1.Version {
		t.Fatalf("version not bumped")
	}
	if st := s.CacheStats(); st.Entries != 1 {
		t.Fatalf("stale view kept after mutation, stats=%+v", st)
	}
	if v2.Summary.PendingCount != 1 || v2.Summary.RejectedCount != 1 {
		t.Fatalf("summary after reject=%+v", v2.Summary)
	}
	if v2.Summary.AllTotal.Cents != 5000 {
		t.Fatalf("rejected amount leaked into total: %d", v2.Summary.AllTotal.Cents)
	}
	if got := v2.Partitions.Rejected[0].ApproverComment; got != core.DefaultRejectComment {
		t.Fatalf("comment=%q", got)
	}
}
