// Package mirror maintains a small versioned key/value copy of the
// notification settings in SQLite. The watch daemon reads from the mirror so
// it can re-arm reminders without parsing the primary store; the CLI context
// remains the source of truth and the mirror is refreshed from it.
package mirror

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/models"
)

type Mirror struct {
	db *sql.DB
}

// Open opens (or creates) the mirror database at path. When the stored schema
// version does not match the expected one, the settings table is dropped and
// recreated empty; readers then fall back to defaults until the next sync.
// There is no migration path, the mirror holds nothing worth carrying over.
func Open(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read mirror schema version: %w", err)
	}

	if version != constants.MirrorSchemaVersion {
		if version != 0 {
			logger.Warn("mirror schema version mismatch, resetting",
				"have", version, "want", constants.MirrorSchemaVersion)
		}
		if _, err := db.Exec("DROP TABLE IF EXISTS settings"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reset mirror: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", constants.MirrorSchemaVersion)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set mirror schema version: %w", err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

// Put stores a JSON-encoded value under key, replacing any prior value.
func (m *Mirror) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize mirror value: %w", err)
	}

	_, err = m.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write mirror value: %w", err)
	}
	return nil
}

// Get decodes the value stored under key into out. The boolean reports
// whether the key was present.
func (m *Mirror) Get(key string, out any) (bool, error) {
	var data string
	err := m.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read mirror value: %w", err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to decode mirror value: %w", err)
	}
	return true, nil
}

// SaveNotificationSettings writes the reminder settings to the mirror.
func (m *Mirror) SaveNotificationSettings(settings models.NotificationSettings) error {
	return m.Put(constants.MirrorSettingsKey, settings)
}

// GetNotificationSettings reads the reminder settings from the mirror,
// returning defaults when none have been synced yet.
func (m *Mirror) GetNotificationSettings() (models.NotificationSettings, error) {
	var settings models.NotificationSettings
	found, err := m.Get(constants.MirrorSettingsKey, &settings)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	if !found {
		return models.DefaultNotificationSettings(), nil
	}
	return settings, nil
}
