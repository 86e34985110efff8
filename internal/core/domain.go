package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DefaultRejectComment is stored when a reviewer rejects without writing anything.
const DefaultRejectComment = "No comment provided"

type (
	Status string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID              string
		EmployeeName    string
		Category        string
		Description     string
		Amount          Money
		Date            Date
		Status          Status
		ApproverComment string // empty until the expense is rejected
	}
)

var (
	ErrNotFound      = errors.New("expense not found")
	ErrEmptyID       = errors.New("empty expense id")
	ErrDuplicateID   = errors.New("duplicate expense id")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroDate      = errors.New("date cannot be zero")

	ErrUnexpectedComment = errors.New("approver comment on an expense that is not rejected")
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected}
}

// ParseStatus maps a case-insensitive name to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Label returns the status capitalised for badges and tab titles.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s Status) String() string {
	return string(s)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// ISO returns the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// HasComment reports whether a reviewer comment is attached.
func (e Expense) HasComment() bool {
	return e.ApproverComment != ""
}

// IsPending reports whether the expense still awaits a decision.
func (e Expense) IsPending() bool {
	return e.Status == StatusPending
}

// Validate checks a seeded expense before it enters the store.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.HasComment() && e.Status != StatusRejected {
		return ErrUnexpectedComment
	}
	return nil
}
