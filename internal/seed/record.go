package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"reviewdesk/internal/core"
)

// Record is the portable shape of a seeded expense. Amount is decimal dollars.
type Record struct {
	ID              string      `json:"id"`
	EmployeeName    string      `json:"employeeName"`
	Category        string      `json:"category"`
	Amount          json.Number `json:"amount"`
	Date            string      `json:"date"`
	Status          string      `json:"status"`
	Description     string      `json:"description"`
	ApproverComment string      `json:"approverComment,omitempty"`
}

// Expense converts the record, parsing amount, date and status.
func (r Record) Expense() (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(r.Amount.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", r.Amount, err)
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("date %q: %w", r.Date, err)
	}
	status := core.StatusPending
	if strings.TrimSpace(r.Status) != "" {
		if status, err = core.ParseStatus(r.Status); err != nil {
			return core.Expense{}, fmt.Errorf("status %q: %w", r.Status, err)
		}
	}
	return core.Expense{
		ID:              strings.TrimSpace(r.ID),
		EmployeeName:    strings.TrimSpace(r.EmployeeName),
		Category:        strings.TrimSpace(r.Category),
		Description:     strings.TrimSpace(r.Description),
		Amount:          core.Money{Cents: cents},
		Date:            date,
		Status:          status,
		ApproverComment: strings.TrimSpace(r.ApproverComment),
	}, nil
}

// Convert turns records into a validated collection, keeping their order.
func Convert(records []Record) (core.Expenses, error) {
	out := make(core.Expenses, 0, len(records))
	for i, r := range records {
		e, err := r.Expense()
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.ID, err)
		}
		out = append(out, e)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeJSON reads a JSON array of records.
func DecodeJSON(r io.Reader) (core.Expenses, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return Convert(records)
}
