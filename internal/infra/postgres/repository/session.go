package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

// SessionRepository provides access to quiz sessions in the database.
type SessionRepository struct {
	db postgres.DBTX
}

// NewSessionRepository creates a new SessionRepository with the provided database pool.
func NewSessionRepository(db postgres.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Load retrieves the session of a user.
func (r *SessionRepository) Load(ctx context.Context, userID int64) (*entities.Session, error) {
	query := `
		SELECT state
		FROM quiz_sessions
		WHERE user_id = $1
	`

	var data []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get quiz session: %w", err)
	}

	return storage.Decode(data)
}

// Save creates or replaces the session of a user.
func (r *SessionRepository) Save(ctx context.Context, userID int64, session *entities.Session) error {
	data, err := storage.Encode(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_sessions (user_id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`

	if _, err = r.db.Exec(ctx, query, userID, data); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}

	return nil
}

// Purge deletes sessions not updated since idleSince.
func (r *SessionRepository) Purge(ctx context.Context, idleSince time.Time) (int64, error) {
	query := `
		DELETE FROM quiz_sessions
		WHERE updated_at < $1
	`

	result, err := r.db.Exec(ctx, query, idleSince)
	if err != nil {
		return 0, fmt.Errorf("purge quiz sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
