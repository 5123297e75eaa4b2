package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

// SessionRepo persists logins so tokens can be revoked server side.
type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

func (r *SessionRepo) CreateSession(session *domain.UserSession) error {
	query := `
	INSERT INTO user_sessions (user_id, session_id, device_info, ip_address, expires_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.DB.Exec(query, session.UserID, session.SessionID, session.DeviceInfo, session.IPAddress, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByID returns nil, nil for an unknown session id.
func (r *SessionRepo) GetSessionByID(sessionID string) (*domain.UserSession, error) {
	query := `
	SELECT id, user_id, session_id, device_info, ip_address, created_at, expires_at, last_activity, is_active
	FROM user_sessions
	WHERE session_id = $1;
	`
	var s domain.UserSession
	err := r.DB.QueryRow(query, sessionID).Scan(
		&s.ID,
		&s.UserID,
		&s.SessionID,
		&s.DeviceInfo,
		&s.IPAddress,
		&s.CreatedAt,
		&s.ExpiresAt,
		&s.LastActivity,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepo) DeactivateSession(sessionID string) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}
	return nil
}

func (r *SessionRepo) UpdateSessionActivity(sessionID string) error {
	query := `UPDATE user_sessions SET last_activity = NOW() WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}
	return nil
}

// CleanupOldSessions deletes sessions that were logged out or expired
// before the cutoff and reports how many rows went.
func (r *SessionRepo) CleanupOldSessions(olderThan time.Duration) (int64, error) {
	query := `
	DELETE FROM user_sessions
	WHERE (is_active = FALSE OR expires_at < NOW())
	AND created_at < $1;
	`
	result, err := r.DB.Exec(query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
