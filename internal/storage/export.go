package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tomatick/internal/core/model"
)

// Bundle is the export/import payload covering all three stores. Absent
// sections are skipped on import.
type Bundle struct {
	Settings       *model.Settings       `json:"settings,omitempty"`
	Stats          *model.Stats          `json:"stats,omitempty"`
	SessionHistory []model.SessionRecord `json:"sessionHistory,omitempty"`
	ExportDate     time.Time             `json:"exportDate"`
}

// ExportBundle gathers settings, stats and the session log into a Bundle.
func ExportBundle(dir string, store *Store) (Bundle, error) {
	settings, err := LoadSettings(dir)
	if err != nil {
		return Bundle{}, err
	}
	stats, err := store.LoadStats()
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Settings:       &settings,
		Stats:          &stats,
		SessionHistory: store.History(),
		ExportDate:     time.Now(),
	}, nil
}

// ImportBundle replaces each store wholesale with the corresponding bundle
// section, skipping sections the bundle does not carry.
func ImportBundle(dir string, store *Store, bundle Bundle) error {
	if bundle.Settings != nil {
		if err := SaveSettings(dir, *bundle.Settings); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
	}
	if bundle.Stats != nil {
		if err := store.SaveStats(*bundle.Stats); err != nil {
			return fmt.Errorf("import stats: %w", err)
		}
	}
	if bundle.SessionHistory != nil {
		if err := store.ReplaceHistory(bundle.SessionHistory); err != nil {
			return fmt.Errorf("import history: %w", err)
		}
	}
	return nil
}

// SaveBundle writes a bundle to path as indented JSON.
func SaveBundle(path string, bundle Bundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// LoadBundle reads a bundle from path.
func LoadBundle(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("parse bundle: %w", err)
	}
	return bundle, nil
}
