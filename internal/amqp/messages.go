package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reviewdesk/internal/notify"
)

// ReviewEvent is the broker representation of a review transition.
type ReviewEvent struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

var ErrInvalidEvent = errors.New("invalid review event")

// NewReviewEvent converts a notification into a review event.
func NewReviewEvent(n notify.Notification) *ReviewEvent {
	ts := n.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return &ReviewEvent{
		ID:          n.Expense.ID,
		Action:      string(n.Action),
		Status:      string(n.Expense.Status),
		Comment:     n.Expense.ApproverComment,
		AmountCents: n.Expense.Amount.Cents,
		Kind:        string(n.Kind),
		Message:     n.Message,
		Timestamp:   ts.UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *ReviewEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReviewEventFromJSON decodes and checks an event.
func ReviewEventFromJSON(data []byte) (*ReviewEvent, error) {
	var msg ReviewEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	switch notify.Action(msg.Action) {
	case notify.ActionApprove, notify.ActionReject:
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, msg.Action)
	}
	return &msg, nil
}
