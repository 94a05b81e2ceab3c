package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tomatick/internal/core/model"
)

const (
	statsFileName   = "stats.json"
	historyFileName = "history.json"

	// maxHistory caps the retained session log at the most recent records.
	maxHistory = 1000
)

// Store persists the stats snapshot and the session log as JSON files in a
// single directory. Writes go through a temp file and os.Rename so a crash
// can never leave a half-written file behind.
type Store struct {
	mu      sync.Mutex
	dir     string
	history []model.SessionRecord
	lastID  int64
	now     func() time.Time
}

// Open loads the session log from dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store := &Store{dir: dir, now: time.Now}
	if err := store.loadHistory(); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadStats reads the stats snapshot, returning defaults if absent.
func (store *Store) LoadStats() (model.Stats, error) {
	stats := model.DefaultStats()

	rawData, err := os.ReadFile(filepath.Join(store.dir, statsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stats, nil
		}
		return stats, fmt.Errorf("read stats file: %w", err)
	}
	if err := json.Unmarshal(rawData, &stats); err != nil {
		return model.DefaultStats(), fmt.Errorf("parse stats file: %w", err)
	}
	return stats, nil
}

// SaveStats writes the whole stats snapshot.
func (store *Store) SaveStats(stats model.Stats) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writeJSON(statsFileName, stats)
}

// History returns a copy of the ordered session log.
func (store *Store) History() []model.SessionRecord {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.SessionRecord(nil), store.history...)
}

// AppendSession stamps the record with its completion timestamp and a
// strictly monotonic millisecond ID, appends it to the log, drops the oldest
// records beyond the retention cap and persists. The updated log is returned.
func (store *Store) AppendSession(record model.SessionRecord) ([]model.SessionRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if record.Timestamp.IsZero() {
		record.Timestamp = store.now()
	}
	id := record.Timestamp.UnixMilli()
	if id <= store.lastID {
		id = store.lastID + 1
	}
	record.ID = id
	store.lastID = id

	store.history = append(store.history, record)
	if len(store.history) > maxHistory {
		store.history = append([]model.SessionRecord(nil), store.history[len(store.history)-maxHistory:]...)
	}

	if err := store.writeJSON(historyFileName, store.history); err != nil {
		return append([]model.SessionRecord(nil), store.history...), err
	}
	return append([]model.SessionRecord(nil), store.history...), nil
}

// ClearHistory empties the session log and persists the empty log.
func (store *Store) ClearHistory() ([]model.SessionRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.history = nil
	if err := store.writeJSON(historyFileName, []model.SessionRecord{}); err != nil {
		return []model.SessionRecord{}, err
	}
	return []model.SessionRecord{}, nil
}

// ReplaceHistory swaps in a whole session log, used by data import.
func (store *Store) ReplaceHistory(history []model.SessionRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.history = append([]model.SessionRecord(nil), history...)
	store.lastID = 0
	for _, record := range store.history {
		if record.ID > store.lastID {
			store.lastID = record.ID
		}
	}
	if store.history == nil {
		return store.writeJSON(historyFileName, []model.SessionRecord{})
	}
	return store.writeJSON(historyFileName, store.history)
}

func (store *Store) loadHistory() error {
	rawData, err := os.ReadFile(filepath.Join(store.dir, historyFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read history file: %w", err)
	}

	var history []model.SessionRecord
	if err := json.Unmarshal(rawData, &history); err != nil {
		return fmt.Errorf("parse history file: %w", err)
	}
	store.history = history
	for _, record := range history {
		if record.ID > store.lastID {
			store.lastID = record.ID
		}
	}
	return nil
}

// writeJSON marshals value and writes it atomically via temp file + rename.
func (store *Store) writeJSON(fileName string, value any) (err error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", fileName, err)
	}

	target := filepath.Join(store.dir, fileName)
	tmp, err := os.CreateTemp(store.dir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	if err = os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}
