package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
)

// SQLiteSessionStore persists sessions in the sessions table.
type SQLiteSessionStore struct {
	db   *sql.DB
	idle time.Duration
	now  models.Clock
}

// NewSQLiteSessionStore creates a store over a database already migrated by [shared.NewDatabase].
func NewSQLiteSessionStore(db *sql.DB, idle time.Duration, now models.Clock) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db, idle: idle, now: clockOrNow(now)}
}

// Get retrieves a live session by id.
func (r *SQLiteSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, client_id, client_secret, access_token, refresh_token, user_id, created_at, last_seen_at
		FROM sessions
		WHERE id = ? AND expires_at > ?
	`

	var s models.Session
	err := r.db.QueryRowContext(ctx, query, id, r.now().UTC()).Scan(
		&s.ID, &s.ClientID, &s.ClientSecret, &s.AccessToken, &s.RefreshToken, &s.UserID, &s.CreatedAt, &s.LastSeenAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &s, nil
}

// Save upserts the session and pushes its expiry out by the idle window.
func (r *SQLiteSessionStore) Save(ctx context.Context, session *models.Session) error {
	now := r.now().UTC()
	if err := checkSave(session, now); err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (id, client_id, client_secret, access_token, refresh_token, user_id, created_at, last_seen_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			user_id = excluded.user_id,
			last_seen_at = excluded.last_seen_at,
			expires_at = excluded.expires_at
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.ClientID, session.ClientSecret, session.AccessToken, session.RefreshToken, session.UserID,
		session.CreatedAt.UTC(), now, now.Add(r.idle),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Delete removes a session by id. Missing sessions are not an error.
func (r *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Prune deletes every expired session.
func (r *SQLiteSessionStore) Prune(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}
