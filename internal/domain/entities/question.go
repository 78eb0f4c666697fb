package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNoOptions               = errors.New("question has no options")
	ErrCorrectOptionOutOfRange = errors.New("correct option index out of range")
)

// Question is a single multiple-choice record loaded from a topic file.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`       // display order
	CorrectOption int      `json:"correctOption"` // index into Options
	Explanation   string   `json:"explanation"`   // shown after a correct answer, may be empty
}

// Validate checks the structural shape of the record.
func (q *Question) Validate() error {
	if len(q.Options) == 0 {
		return ErrNoOptions
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return fmt.Errorf("%w: %d of %d", ErrCorrectOptionOutOfRange, q.CorrectOption, len(q.Options))
	}
	return nil
}

// CorrectAnswer returns the text of the correct option.
func (q *Question) CorrectAnswer() string {
	return q.Options[q.CorrectOption]
}

// IsCorrect reports whether the reply matches the correct option verbatim.
// Tapping a reply-keyboard button sends the exact option text, so no
// normalization is applied.
func (q *Question) IsCorrect(reply string) bool {
	return reply == q.CorrectAnswer()
}
