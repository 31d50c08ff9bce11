package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// Setting keys used by the service.
const (
	SettingConfidenceThreshold = "confidence_threshold"
	SettingHoldDurationSec     = "hold_duration_sec"
	SettingSpeechEnabled       = "speech_enabled"
)

// SettingsRepository provides access to the settings key-value table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get returns the value for key, or ErrNotFound.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set inserts or replaces the value for key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetFloat returns the value for key parsed as a float64. Missing or
// unparseable values return the fallback.
func (r *SettingsRepository) GetFloat(key string, fallback float64) float64 {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

// SetFloat stores a float64 value for key.
func (r *SettingsRepository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// GetBool returns the value for key parsed as a bool. Missing or
// unparseable values return the fallback.
func (r *SettingsRepository) GetBool(key string, fallback bool) bool {
	value, err := r.Get(key)
	if err != nil {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// SetBool stores a bool value for key.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	return r.Set(key, strconv.FormatBool(value))
}
