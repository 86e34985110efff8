// Package memory serves the built-in sample expenses, or a JSON seed file
// when one is configured.
package memory

import (
	"context"
	"fmt"
	"os"

	"reviewdesk/internal/core"
	"reviewdesk/internal/seed"
)

type Reader struct {
	path string
}

var _ seed.Reader = (*Reader)(nil)

// New returns a reader for the built-in sample data.
func New() *Reader {
	return &Reader{}
}

// NewFromFile returns a reader for a JSON seed file. An empty path falls back
// to the built-in sample data.
func NewFromFile(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) LoadExpenses(_ context.Context) (core.Expenses, error) {
	if r.path == "" {
		return Sample(), nil
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return seed.DecodeJSON(f)
}

// Sample returns the five demonstration expenses.
func Sample() core.Expenses {
	return core.Expenses{
		{
			ID:           "1",
			EmployeeName: "Sarah Johnson",
			Category:     "Travel",
			Description:  "Flight tickets for client meeting in San Francisco",
			Amount:       core.Money{Cents: 125000},
			Date:         core.NewDate(2025, 1, 15),
			Status:       core.StatusPending,
		},
		{
			ID:           "2",
			EmployeeName: "Michael Chen",
			Category:     "Office Supplies",
			Description:  "New ergonomic keyboard and mouse for workstation",
			Amount:       core.Money{Cents: 45000},
			Date:         core.NewDate(2025, 1, 14),
			Status:       core.StatusPending,
		},
		{
			ID:           "3",
			EmployeeName: "Emma Davis",
			Category:     "Marketing",
			Description:  "Social media advertising campaign for Q1 launch",
			Amount:       core.Money{Cents: 89000},
			Date:         core.NewDate(2025, 1, 13),
			Status:       core.StatusApproved,
		},
		{
			ID:              "4",
			EmployeeName:    "James Wilson",
			Category:        "Meals & Entertainment",
			Description:     "Team dinner with potential investors",
			Amount:          core.Money{Cents: 32000},
			Date:            core.NewDate(2025, 1, 12),
			Status:          core.StatusRejected,
			ApproverComment: "Missing itemized receipt. Please resubmit with detailed breakdown.",
		},
		{
			ID:           "5",
			EmployeeName: "Lisa Anderson",
			Category:     "Software",
			Description:  "Annual subscription for design software suite",
			Amount:       core.Money{Cents: 210000},
			Date:         core.NewDate(2025, 1, 11),
			Status:       core.StatusPending,
		},
	}
}
