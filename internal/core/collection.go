package core

import (
	"fmt"
	"strings"
)

// Expenses is the ordered collection under review. Mutating helpers never
// touch the receiver's backing array; they return a fresh slice so callers
// holding the old value can detect change by comparison.
type Expenses []Expense

// Clone returns an independent copy of the collection.
func (es Expenses) Clone() Expenses {
	if es == nil {
		return nil
	}
	out := make(Expenses, len(es))
	copy(out, es)
	return out
}

// Index returns the position of id, or -1.
func (es Expenses) Index(id string) int {
	for i := range es {
		if es[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the expense with the given id.
func (es Expenses) Find(id string) (Expense, bool) {
	if i := es.Index(id); i >= 0 {
		return es[i], true
	}
	return Expense{}, false
}

// Approve returns a new collection with the matching expense approved.
// Unknown ids return the receiver unchanged and false.
func (es Expenses) Approve(id string) (Expenses, bool) {
	return es.update(id, func(e *Expense) {
		e.Status = StatusApproved
		e.ApproverComment = ""
	})
}

// Reject returns a new collection with the matching expense rejected and its
// comment set. A blank comment stores DefaultRejectComment; any other comment
// is stored as written.
func (es Expenses) Reject(id, comment string) (Expenses, bool) {
	if strings.TrimSpace(comment) == "" {
		comment = DefaultRejectComment
	}
	return es.update(id, func(e *Expense) {
		e.Status = StatusRejected
		e.ApproverComment = comment
	})
}

func (es Expenses) update(id string, fn func(*Expense)) (Expenses, bool) {
	i := es.Index(id)
	if i < 0 {
		return es, false
	}
	out := es.Clone()
	fn(&out[i])
	return out, true
}

// Validate checks every expense and rejects duplicate ids.
func (es Expenses) Validate() error {
	seen := make(map[string]struct{}, len(es))
	for i, e := range es {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expense %d (%q): %w", i, e.ID, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("expense %d (%q): %w", i, e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
