package backend

import (
	"errors"
	"fmt"
	"strings"

	"reviewdesk/internal/config"
)

// ErrMissingSetting is wrapped by Validate when a backend lacks a required value.
var ErrMissingSetting = errors.New("missing backend setting")

// ParseBackendType accepts memory, sqlite or sheets in any case.
func ParseBackendType(s string) (BackendType, error) {
	bt := BackendType(strings.ToLower(strings.TrimSpace(s)))
	if !bt.IsValid() {
		return "", fmt.Errorf("invalid backend type %q: must be one of memory, sqlite, sheets", s)
	}
	return bt, nil
}

// FromAppConfig picks the seed source settings out of the application config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	bt, err := ParseBackendType(appConfig.DataBackend)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Type:                     bt,
		SeedFile:                 appConfig.SeedFile,
		SQLiteDBPath:             appConfig.SQLiteDBPath,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
	}, nil
}

// Validate checks the settings the selected seed source needs. Memory needs
// none; an empty SeedFile means the built-in sample.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	var missing string
	switch {
	case c.Type == SQLiteBackend && c.SQLiteDBPath == "":
		missing = "sqlite database path"
	case c.Type == SheetsBackend && c.GoogleSpreadsheetID == "":
		missing = "google spreadsheet id"
	}
	if missing != "" {
		return fmt.Errorf("%s backend: %s: %w", c.Type, missing, ErrMissingSetting)
	}
	return nil
}
