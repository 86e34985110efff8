package google

import (
	"errors"
	"strings"
	"testing"

	"reviewdesk/internal/core"
)

func TestParseRows(t *testing.T) {
	values := [][]interface{}{
		{"id", "Employee", "Category", "Amount", "Date", "Status", "Description", "Comment"},
		{"1", "Sarah Johnson", "Travel", "$1,250.00", "2025-01-15", "pending", "Flights"},
		{},
		{"", "", "", "", "", "", "", ""},
		{"4", "James Wilson", "Meals", "320", "2025-01-12", "Rejected", "Dinner", "Missing receipt"},
		{"6", "Ana", "Misc", "12,5", "2025-01-10", "", "Pens"},
		{"7", "Lisa Anderson", "Software", "$1,250", "2025-01-11", "pending", "Suite"},
	}
	es, err := parseRows(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(es) != 4 {
		t.Fatalf("len=%d", len(es))
	}
	if es[0].Amount.Cents != 125000 || es[0].Status != core.StatusPending || es[0].HasComment() {
		t.Fatalf("first=%+v", es[0])
	}
	if es[1].Status != core.StatusRejected || es[1].ApproverComment != "Missing receipt" {
		t.Fatalf("second=%+v", es[1])
	}
	if es[2].Amount.Cents != 1250 || es[2].Status != core.StatusPending {
		t.Fatalf("third=%+v", es[2])
	}
	if es[3].Amount.Cents != 125000 || es[3].Amount.String() != "$1,250.00" {
		t.Fatalf("whole-dollar amount with grouping parsed as %d (%s)", es[3].Amount.Cents, es[3].Amount)
	}
}

func TestParseRowsHeaderErrors(t *testing.T) {
	_, err := parseRows([][]interface{}{{"Employee", "Amount"}})
	if err == nil || !strings.Contains(err.Error(), "missing ID,Date") {
		t.Fatalf("err=%v", err)
	}
}

func TestParseRowsRejectsBadData(t *testing.T) {
	values := [][]interface{}{
		{"ID", "Amount", "Date"},
		{"1", "10", "2025-01-01"},
		{"1", "20", "2025-01-02"},
	}
	if _, err := parseRows(values); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("err=%v", err)
	}
}

func TestParseRowsEmpty(t *testing.T) {
	es, err := parseRows(nil)
	if err != nil || len(es) != 0 {
		t.Fatalf("es=%v err=%v", es, err)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := map[string]string{
		"$1,250.00": "1250.00",
		" 45 ":      "45",
		"12,5":      "12.5",
		"$1,250":    "1250",
		"1,250,000": "1250000",
		"$ 2 100.5": "2100.5",
	}
	for in, want := range tests {
		if got := normalizeAmount(in); got != want {
			t.Errorf("normalizeAmount(%q)=%q want %q", in, got, want)
		}
	}
}
