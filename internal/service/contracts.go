package service

import (
	"context"
	"time"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

// SessionStore persists quiz sessions keyed by user ID. Load returns
// storage.ErrSessionNotFound on a miss.
type SessionStore interface {
	Load(ctx context.Context, userID int64) (*entities.Session, error)
	Save(ctx context.Context, userID int64, session *entities.Session) error
}

// SessionPurger is implemented by stores without native expiry.
type SessionPurger interface {
	Purge(ctx context.Context, idleSince time.Time) (int64, error)
}
