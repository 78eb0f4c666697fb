package entities

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr error
	}{
		{"valid", Question{Options: []string{"a", "b"}, CorrectOption: 1}, nil},
		{"no options", Question{CorrectOption: 0}, ErrNoOptions},
		{"index too large", Question{Options: []string{"a"}, CorrectOption: 1}, ErrCorrectOptionOutOfRange},
		{"negative index", Question{Options: []string{"a"}, CorrectOption: -1}, ErrCorrectOptionOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{Options: []string{"display: flex", "float: left"}, CorrectOption: 0}

	if !q.IsCorrect("display: flex") {
		t.Error("exact option text must match")
	}
	for _, reply := range []string{"Display: flex", " display: flex", "float: left", ""} {
		if q.IsCorrect(reply) {
			t.Errorf("%q must not match", reply)
		}
	}
}
