package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"reviewdesk/internal/core"
	applog "reviewdesk/internal/log"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "seed.db")
	repo, err := NewSQLiteRepository(path, applog.New(applog.Config{Output: io.Discard}))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadSeededExpenses(t *testing.T) {
	repo := newTestRepo(t)
	es, err := repo.LoadExpenses(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(es) != 5 {
		t.Fatalf("len=%d", len(es))
	}
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		if es[i].ID != want {
			t.Fatalf("order: got %s at %d", es[i].ID, i)
		}
	}
	if es[3].Status != core.StatusRejected || !es[3].HasComment() {
		t.Fatalf("rejected row=%+v", es[3])
	}
	if es[0].HasComment() || es[0].Date.ISO() != "2025-01-15" {
		t.Fatalf("first row=%+v", es[0])
	}
	s := core.Aggregate(es)
	if s.PendingTotal.Cents != 380000 || s.AllTotal.Cents != 469000 {
		t.Fatalf("summary=%+v", s)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	for i := 0; i < 2; i++ {
		repo, err := NewSQLiteRepository(path, applog.New(applog.Config{Output: io.Discard}))
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		es, err := repo.LoadExpenses(context.Background())
		repo.Close()
		if err != nil || len(es) != 5 {
			t.Fatalf("run %d: len=%d err=%v", i, len(es), err)
		}
	}
}

func TestRunMigrationsReportsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")

	first, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !first.Applied || first.Version != 2 || first.Dirty {
		t.Fatalf("first=%+v", first)
	}

	second, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Applied || second.Version != 2 {
		t.Fatalf("second=%+v", second)
	}
}
