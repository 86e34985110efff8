// Package store holds the canonical in-memory collection of expenses under
// review. Every mutation swaps in a new collection and bumps the version, so
// readers holding an older snapshot are never affected.
package store

import (
	"strconv"
	"sync"

	"reviewdesk/internal/cache"
	"reviewdesk/internal/core"
)

// View bundles the derived partitions and summary for one collection version.
type View struct {
	Version    uint64
	Partitions core.Partitions
	Summary    core.Summary
}

// Result describes the outcome of a mutation.
type Result struct {
	Expenses core.Expenses
	Expense  core.Expense // the record after the transition; zero when not found
	Version  uint64
	Changed  bool
}

type Store struct {
	mu       sync.RWMutex
	expenses core.Expenses
	version  uint64
	views    *cache.LRUCache[View]
}

// New seeds a store. The seed is copied; callers may reuse their slice.
func New(seed core.Expenses) (*Store, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		expenses: seed.Clone(),
		version:  1,
		views:    cache.NewLRUCache[View](4, 0),
	}, nil
}

// Snapshot returns the current collection and its version.
func (s *Store) Snapshot() (core.Expenses, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses, s.version
}

// Len returns the number of seeded expenses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expenses)
}

// Approve marks id approved. Unknown ids leave the store untouched.
func (s *Store) Approve(id string) Result {
	return s.apply(id, func(es core.Expenses) (core.Expenses, bool) {
		return es.Approve(id)
	})
}

// Reject marks id rejected with comment (or the default comment).
func (s *Store) Reject(id, comment string) Result {
	return s.apply(id, func(es core.Expenses) (core.Expenses, bool) {
		return es.Reject(id, comment)
	})
}

func (s *Store) apply(id string, fn func(core.Expenses) (core.Expenses, bool)) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := fn(s.expenses)
	if !ok {
		return Result{Expenses: s.expenses, Version: s.version}
	}
	s.expenses = next
	s.views.Delete(viewKey(s.version))
	s.version++
	e, _ := next.Find(id)
	return Result{Expenses: next, Expense: e, Version: s.version, Changed: true}
}

// View returns partitions and aggregates for the current collection,
// memoised per version.
func (s *Store) View() View {
	es, version := s.Snapshot()
	key := viewKey(version)
	if v, ok := s.views.Get(key); ok {
		return v
	}
	v := View{
		Version:    version,
		Partitions: core.Partition(es),
		Summary:    core.Aggregate(es),
	}
	s.views.Set(key, v)
	return v
}

func viewKey(version uint64) string {
	return strconv.FormatUint(version, 10)
}

// CacheStats exposes the view cache counters.
func (s *Store) CacheStats() cache.Stats {
	return s.views.Stats()
}
