// Package seed defines where the initial review collection comes from.
// Seed sources are read-only; review decisions never flow back to them.
package seed

import (
	"context"

	"reviewdesk/internal/core"
)

// Reader loads the initial collection.
type Reader interface {
	LoadExpenses(ctx context.Context) (core.Expenses, error)
}

// Func adapts a function to Reader.
type Func func(ctx context.Context) (core.Expenses, error)

func (f Func) LoadExpenses(ctx context.Context) (core.Expenses, error) {
	return f(ctx)
}
