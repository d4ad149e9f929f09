package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner-api/internal/grocery"

	"github.com/google/uuid"
)

// SQLiteStore persists sessions in the local SQLite database, so stored
// grocery lists survive a process restart. Storage is still temporary: rows
// past their expiry are swept on access.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteStore wraps an existing database connection. The grocery_sessions
// table must already be migrated. ttl of zero disables expiry.
func NewSQLiteStore(db *sql.DB, ttl time.Duration) *SQLiteStore {
	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}
}

// Create stores the list under a fresh session id.
func (s *SQLiteStore) Create(ctx context.Context, list grocery.List) (string, error) {
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	sessionID := uuid.New().String()
	now := s.now().UTC()

	var expiresAt sql.NullTime
	if s.ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(s.ttl), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO grocery_sessions (session_id, list_data, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sessionID, string(data), now, expiresAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert grocery session: %w", err)
	}

	return sessionID, nil
}

// Get returns the list stored under sessionID, sweeping it if expired.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (grocery.List, error) {
	var data string
	var expiresAt sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT list_data, expires_at FROM grocery_sessions WHERE session_id = ?`,
		sessionID,
	).Scan(&data, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query grocery session: %w", err)
	}

	if expiresAt.Valid && s.now().UTC().After(expiresAt.Time) {
		// Best effort sweep; the row is dead either way.
		_, _ = s.db.ExecContext(ctx, `DELETE FROM grocery_sessions WHERE session_id = ?`, sessionID)
		return nil, ErrNotFound
	}

	var list grocery.List
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	return list, nil
}

// Delete removes the session, reporting ErrNotFound when no row was live.
func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM grocery_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
