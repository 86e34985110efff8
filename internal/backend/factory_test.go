package backend

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"reviewdesk/internal/config"
	applog "reviewdesk/internal/log"
)

func quietFactory() Factory {
	return NewFactory(applog.New(applog.Config{Output: io.Discard}))
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := quietFactory().CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	es, err := res.Reader.LoadExpenses(context.Background())
	if err != nil || len(es) != 5 {
		t.Fatalf("es=%d err=%v", len(es), err)
	}
	if res.Cleanup != nil {
		t.Fatal("memory backend needs no cleanup")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	res, err := quietFactory().CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: path})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer res.Cleanup()
	es, err := res.Reader.LoadExpenses(context.Background())
	if err != nil || len(es) != 5 {
		t.Fatalf("es=%d err=%v", len(es), err)
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	tests := []Config{
		{Type: "postgres"},
		{Type: SQLiteBackend},
		{Type: SheetsBackend},
	}
	for _, cfg := range tests {
		if _, err := quietFactory().CreateBackend(context.Background(), cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sheets", GoogleSpreadsheetID: "id", GoogleSheetName: "Expenses"})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if cfg.Type != SheetsBackend || cfg.GoogleSpreadsheetID != "id" || cfg.GoogleSheetName != "Expenses" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "nope"}); err == nil {
		t.Fatal("expected error for invalid backend")
	}
}

func TestParseBackendType(t *testing.T) {
	tests := []struct {
		in      string
		want    BackendType
		wantErr bool
	}{
		{"memory", MemoryBackend, false},
		{" SQLite ", SQLiteBackend, false},
		{"sheets", SheetsBackend, false},
		{"postgres", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackendType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBackendType(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestValidateWrapsMissingSetting(t *testing.T) {
	err := Config{Type: SQLiteBackend}.Validate()
	if !errors.Is(err, ErrMissingSetting) {
		t.Fatalf("err = %v, want ErrMissingSetting", err)
	}
	if err := (Config{Type: MemoryBackend}).Validate(); err != nil {
		t.Fatalf("memory needs no settings: %v", err)
	}
}
