package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

func TestSessionStorageLoadSave(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStorage()

	if _, err := s.Load(ctx, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	session := entities.NewSession()
	session.State = entities.AwaitingAnswer(entities.CategoryCSS, 2)
	session.MarkAsked(entities.CategoryCSS, 2)
	session.AddCorrect(entities.CategoryCSS)

	if err := s.Save(ctx, 1, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved value must not leak into the store.
	session.AddCorrect(entities.CategoryCSS)

	got, err := s.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.State != entities.AwaitingAnswer(entities.CategoryCSS, 2) {
		t.Errorf("unexpected state %+v", got.State)
	}
	if got.CorrectAnswers[entities.CategoryCSS] != 1 {
		t.Errorf("expected stored score 1, got %d", got.CorrectAnswers[entities.CategoryCSS])
	}
	if asked := got.AskedIn(entities.CategoryCSS); len(asked) != 1 || asked[0] != 2 {
		t.Errorf("unexpected asked %v", asked)
	}
}

func TestSessionStoragePurge(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStorage()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, 1, entities.NewSession())
	now = base.Add(time.Hour)
	_ = s.Save(ctx, 2, entities.NewSession())

	removed, err := s.Purge(ctx, base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 || s.Len() != 1 {
		t.Errorf("expected one purged session, removed=%d len=%d", removed, s.Len())
	}
	if _, err = s.Load(ctx, 2); err != nil {
		t.Errorf("recent session must survive: %v", err)
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(`{"correct_answers":{"go":4}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State.Phase != entities.PhaseIdle || got.CorrectAnswers[entities.CategoryGo] != 4 {
		t.Errorf("unexpected session %+v", got)
	}

	if _, err = Decode([]byte(`{`)); err == nil {
		t.Error("expected decode error")
	}
}
