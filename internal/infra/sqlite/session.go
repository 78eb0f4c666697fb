package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

// SessionRepository keeps quiz sessions in a local SQLite file.
type SessionRepository struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and initializes tables.
func Open(path string) (*SessionRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err = createTables(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SessionRepository{conn: db}, nil
}

// Close closes the database connection.
func (r *SessionRepository) Close() error {
	return r.conn.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS quiz_sessions (
			user_id INTEGER PRIMARY KEY,
			state TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create quiz_sessions: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_updated_at ON quiz_sessions (updated_at)`)
	return err
}

// Load returns the session of userID or storage.ErrSessionNotFound.
func (r *SessionRepository) Load(ctx context.Context, userID int64) (*entities.Session, error) {
	var data []byte
	err := r.conn.QueryRowContext(ctx,
		"SELECT state FROM quiz_sessions WHERE user_id = ?",
		userID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get quiz session: %w", err)
	}

	return storage.Decode(data)
}

// Save creates or replaces the session of userID.
func (r *SessionRepository) Save(ctx context.Context, userID int64, session *entities.Session) error {
	data, err := storage.Encode(session)
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO quiz_sessions (user_id, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}

	return nil
}

// Purge deletes sessions not updated since idleSince.
func (r *SessionRepository) Purge(ctx context.Context, idleSince time.Time) (int64, error) {
	result, err := r.conn.ExecContext(ctx,
		"DELETE FROM quiz_sessions WHERE updated_at < ?",
		idleSince.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge quiz sessions: %w", err)
	}

	return result.RowsAffected()
}
