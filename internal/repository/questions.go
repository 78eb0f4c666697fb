package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

var (
	ErrQuestionsFieldMissing = errors.New(`payload has no "questions" array`)
	ErrQuestionNotFound      = errors.New("question not found")
)

// QuestionBank holds the read-only questions of every category that loaded.
type QuestionBank struct {
	questions map[entities.Category][]entities.Question
}

// NewQuestionBank builds a bank from already parsed questions. Categories
// missing from the map are treated as unavailable.
func NewQuestionBank(questions map[entities.Category][]entities.Question) *QuestionBank {
	cp := make(map[entities.Category][]entities.Question, len(questions))
	for c, qs := range questions {
		items := make([]entities.Question, len(qs))
		copy(items, qs)
		cp[c] = items
	}
	return &QuestionBank{questions: cp}
}

// LoadQuestionBank reads one file per category from dir. A category whose
// file cannot be read or parsed is logged and left out; loading continues.
func LoadQuestionBank(dir string, files map[entities.Category]string, logger *zap.Logger) *QuestionBank {
	bank := &QuestionBank{questions: make(map[entities.Category][]entities.Question, len(files))}

	for _, category := range entities.Categories() {
		file, ok := files[category]
		if !ok {
			continue
		}

		path := filepath.Join(dir, file)
		questions, err := loadQuestions(path)
		if err != nil {
			logger.Warn("failed to load questions",
				zap.String("category", string(category)),
				zap.String("file", path),
				zap.Error(err),
			)
			continue
		}

		bank.questions[category] = questions
		logger.Info("questions loaded",
			zap.String("category", string(category)),
			zap.Int("count", len(questions)),
		)
	}

	if len(bank.questions) == 0 {
		logger.Error("no question categories available", zap.String("dir", dir))
	}

	return bank
}

// Questions returns the ordered questions of c and whether c is available.
func (b *QuestionBank) Questions(c entities.Category) ([]entities.Question, bool) {
	qs, ok := b.questions[c]
	return qs, ok
}

// Count returns the number of questions in c, or -1 if c is unavailable.
func (b *QuestionBank) Count(c entities.Category) int {
	qs, ok := b.questions[c]
	if !ok {
		return -1
	}
	return len(qs)
}

// Get returns question idx of category c.
func (b *QuestionBank) Get(c entities.Category, idx int) (*entities.Question, error) {
	qs, ok := b.questions[c]
	if !ok || idx < 0 || idx >= len(qs) {
		return nil, ErrQuestionNotFound
	}
	return &qs[idx], nil
}

// Available lists the categories that loaded, in menu order.
func (b *QuestionBank) Available() []entities.Category {
	out := make([]entities.Category, 0, len(b.questions))
	for _, c := range entities.Categories() {
		if _, ok := b.questions[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func loadQuestions(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Questions *[]entities.Question `json:"questions"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if wrapper.Questions == nil {
		return nil, ErrQuestionsFieldMissing
	}

	questions := *wrapper.Questions
	for i := range questions {
		if err = questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	return questions, nil
}
