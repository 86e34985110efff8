// Package notify carries review transitions to whoever needs to hear about
// them: logs, a message broker, or the browser toast.
package notify

import (
	"context"
	"errors"
	"time"

	"reviewdesk/internal/core"
)

// Kind selects the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Action names the transition that produced a notification.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

const (
	MessageApproved = "Expense approved successfully"
	MessageRejected = "Expense rejected"
)

type Notification struct {
	Kind    Kind
	Message string
	Action  Action
	Expense core.Expense
	At      time.Time
}

// ForApprove builds the notification emitted after an approval.
func ForApprove(e core.Expense) Notification {
	return Notification{Kind: KindSuccess, Message: MessageApproved, Action: ActionApprove, Expense: e, At: time.Now()}
}

// ForReject builds the notification emitted after a rejection.
func ForReject(e core.Expense) Notification {
	return Notification{Kind: KindError, Message: MessageRejected, Action: ActionReject, Expense: e, At: time.Now()}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
