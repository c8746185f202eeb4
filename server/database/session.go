package database

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrSessionExpired = errors.New("session expired")

// Session is the server-side copy of everything the browser needs to stay
// logged in against the club API: the bearer token plus the user summary
// returned by the login endpoint. Deleting the row logs the viewer out.
type Session struct {
	ID          string    `db:"session_id"`
	CreatedAt   time.Time `db:"session_created_at"`
	ExpiresAt   time.Time `db:"session_expires_at"`
	AccessToken string    `db:"session_access_token"`
	UserID      int       `db:"session_user_id"`
	Username    string    `db:"session_username"`
	IsAdmin     bool      `db:"session_is_admin"`
}

func (d *Database) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := d.db.GetContext(ctx, &session, "SELECT * FROM sessions WHERE session_id = $1", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (d *Database) CreateSession(ctx context.Context, session Session) error {
	query := `
		INSERT INTO sessions (session_id, session_created_at, session_expires_at, session_access_token, session_user_id, session_username, session_is_admin)
		VALUES (:session_id, :session_created_at, :session_expires_at, :session_access_token, :session_user_id, :session_username, :session_is_admin)
	`
	_, err := d.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// DeleteSession clears every persisted session value at once. Used by logout
// and by the 401-triggered session reset.
func (d *Database) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (d *Database) DeleteExpiredSessions(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_expires_at < NOW()")
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	return nil
}
