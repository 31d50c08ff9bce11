package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one archived sentence.
type HistoryEntry struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// HistoryRepository provides access to the sentence archive.
type HistoryRepository struct {
	db *sql.DB
}

// History returns the sentence history repository for this store.
func (s *Store) History() *HistoryRepository {
	return &HistoryRepository{db: s.db}
}

// Add archives a sentence and returns its entry.
func (r *HistoryRepository) Add(text string) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sentence_history (id, text, created_at) VALUES (?, ?, ?)`,
		entry.ID, entry.Text, entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns archived sentences oldest first. A limit <= 0 returns
// everything.
func (r *HistoryRepository) List(limit int) ([]*HistoryEntry, error) {
	query := `SELECT id, text, created_at FROM sentence_history ORDER BY created_at ASC`
	args := []any{}
	if limit > 0 {
		// Most recent N, still presented oldest first.
		query = `SELECT id, text, created_at FROM (
			SELECT id, text, created_at FROM sentence_history
			ORDER BY created_at DESC LIMIT ?
		) ORDER BY created_at ASC`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		e := &HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.Text, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes an archived sentence by id.
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sentence_history WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
