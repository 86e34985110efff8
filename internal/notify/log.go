package notify

import (
	"context"

	applog "reviewdesk/internal/log"
)

// Logger writes each notification as a structured log line.
type Logger struct {
	logger *applog.Logger
}

func NewLogger(logger *applog.Logger) *Logger {
	return &Logger{logger: logger.WithComponent(applog.ComponentNotify)}
}

func (l *Logger) Notify(ctx context.Context, n Notification) error {
	fields := applog.NewFields().
		WithExpense(n.Expense.ID, n.Expense.Amount.Cents, string(n.Expense.Status)).
		WithAction(string(n.Action))
	fields[applog.FieldKind] = string(n.Kind)
	if n.Expense.HasComment() {
		fields[applog.FieldComment] = n.Expense.ApproverComment
	}
	l.logger.InfoContext(ctx, n.Message, fields.ToSlice()...)
	return nil
}
