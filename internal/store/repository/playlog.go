package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/store"
)

// PlayLogRepository handles play-log archive access
type PlayLogRepository struct {
	db *store.Database
}

// NewPlayLogRepository creates a new play-log repository
func NewPlayLogRepository(db *store.Database) *PlayLogRepository {
	return &PlayLogRepository{db: db}
}

// SaveEntries archives entries of one game. Entries already archived
// (same game and action id) are left untouched.
func (r *PlayLogRepository) SaveEntries(ctx context.Context, gameID, sessionID string, entries []pbp.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := r.db.Rebind(`
		INSERT INTO play_log (game_id, action_id, session_id, category, entry_text, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id, action_id) DO NOTHING
	`)

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, gameID, entry.ActionID, sessionID, string(entry.Category), entry.Text, now); err != nil {
			return fmt.Errorf("inserting action %d: %w", entry.ActionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns the newest archived entries of a game, newest first
func (r *PlayLogRepository) Recent(ctx context.Context, gameID string, limit int) ([]*store.PlayLogEntry, error) {
	query := r.db.Rebind(`
		SELECT game_id, action_id, session_id, category, entry_text, recorded_at
		FROM play_log
		WHERE game_id = ?
		ORDER BY action_id DESC
		LIMIT ?
	`)

	rows, err := r.db.DB().QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying play log: %w", err)
	}
	defer rows.Close()

	var entries []*store.PlayLogEntry
	for rows.Next() {
		entry := &store.PlayLogEntry{}
		var recordedAt int64
		if err := rows.Scan(&entry.GameID, &entry.ActionID, &entry.SessionID, &entry.Category, &entry.Text, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning play log: %w", err)
		}
		entry.RecordedAt = time.Unix(recordedAt, 0).UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns how many entries are archived for a game
func (r *PlayLogRepository) Count(ctx context.Context, gameID string) (int, error) {
	var n int
	err := r.db.DB().QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM play_log WHERE game_id = ?`), gameID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting play log: %w", err)
	}
	return n, nil
}
