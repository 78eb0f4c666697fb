package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

func openTestRepository(t *testing.T) *SessionRepository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "nested", "quiz.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestSessionRepositoryLoadSave(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepository(t)

	if _, err := repo.Load(ctx, 10); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	session := entities.NewSession()
	session.State = entities.AwaitingRetry(entities.CategoryHTML)
	session.AddCorrect(entities.CategoryHTML)

	if err := repo.Save(ctx, 10, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	session.State = entities.Idle()
	if err := repo.Save(ctx, 10, session); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(ctx, 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.State != entities.Idle() {
		t.Errorf("expected the latest state, got %+v", got.State)
	}
	if got.CorrectAnswers[entities.CategoryHTML] != 1 {
		t.Errorf("expected score 1, got %d", got.CorrectAnswers[entities.CategoryHTML])
	}
}

func TestSessionRepositoryPurge(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepository(t)

	if err := repo.Save(ctx, 1, entities.NewSession()); err != nil {
		t.Fatalf("save: %v", err)
	}

	removed, err := repo.Purge(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 0 {
		t.Errorf("fresh session must survive, removed %d", removed)
	}

	removed, err = repo.Purge(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, err = repo.Load(ctx, 1); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("expected purged session to be gone, got %v", err)
	}
}
