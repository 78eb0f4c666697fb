package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

const sessionKeyPrefix = "quiz:session:"

// SessionRepository keeps sessions in Redis. Expiry is left to the key TTL,
// refreshed on every save.
type SessionRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSessionRepository creates a SessionRepository. A zero ttl stores keys without expiry.
func NewSessionRepository(client redis.Cmdable, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Load returns the session of userID or storage.ErrSessionNotFound.
func (r *SessionRepository) Load(ctx context.Context, userID int64) (*entities.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return storage.Decode(data)
}

// Save stores the session of userID and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, userID int64, session *entities.Session) error {
	data, err := storage.Encode(session)
	if err != nil {
		return err
	}

	if err = r.client.Set(ctx, sessionKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

func sessionKey(userID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(userID, 10)
}
