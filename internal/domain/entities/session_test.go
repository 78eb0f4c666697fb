package entities

import (
	"reflect"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := NewSession()

	if s.State != Idle() {
		t.Errorf("expected idle state, got %+v", s.State)
	}
	if !s.FirstAttempt {
		t.Error("expected first attempt flag")
	}
	for _, c := range Categories() {
		if n, ok := s.CorrectAnswers[c]; !ok || n != 0 {
			t.Errorf("expected zero score for %s, got %d (present=%v)", c, n, ok)
		}
	}
}

func TestMarkAsked(t *testing.T) {
	s := NewSession()

	for _, idx := range []int{3, 1, 4, 1, 0} {
		s.MarkAsked(CategoryJS, idx)
	}

	if got, want := s.AskedIn(CategoryJS), []int{0, 1, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if s.MarkAsked(CategoryJS, 3) {
		t.Error("duplicate index must be reported")
	}
	if len(s.AskedIn(CategoryCSS)) != 0 {
		t.Error("other categories must stay untouched")
	}
}

func TestResetAskedKeepsScore(t *testing.T) {
	s := NewSession()
	s.MarkAsked(CategoryReact, 0)
	s.AddCorrect(CategoryReact)

	s.ResetAsked(CategoryReact)

	if len(s.AskedIn(CategoryReact)) != 0 {
		t.Errorf("expected empty tracking, got %v", s.AskedIn(CategoryReact))
	}
	if s.CorrectAnswers[CategoryReact] != 1 {
		t.Errorf("reset must not touch the score, got %d", s.CorrectAnswers[CategoryReact])
	}
}

func TestScoresIsCopy(t *testing.T) {
	s := NewSession()
	s.AddCorrect(CategoryGo)

	scores := s.Scores()
	scores[CategoryGo] = 100

	if s.CorrectAnswers[CategoryGo] != 1 {
		t.Errorf("Scores must return a copy, got %d", s.CorrectAnswers[CategoryGo])
	}
}

func TestNormalize(t *testing.T) {
	s := &Session{CorrectAnswers: map[Category]int{CategoryCSS: 2}}
	s.Normalize()

	if s.State != Idle() {
		t.Errorf("expected idle state, got %+v", s.State)
	}
	if s.Asked == nil {
		t.Error("expected asked map")
	}
	if s.CorrectAnswers[CategoryCSS] != 2 || len(s.CorrectAnswers) != len(Categories()) {
		t.Errorf("unexpected scores %v", s.CorrectAnswers)
	}
}
