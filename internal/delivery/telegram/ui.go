package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

// buildCategoryKeyboard builds the topic menu, two topics per row.
func buildCategoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	var row []tgbotapi.KeyboardButton
	for _, c := range entities.Categories() {
		row = append(row, tgbotapi.NewKeyboardButton(c.Label()))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}

	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnScore)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// buildQuestionKeyboard builds one row per option plus the back button.
func buildQuestionKeyboard(q *entities.Question) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(q.Options)+1)
	for _, option := range q.Options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(option)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// buildRetryKeyboard builds the yes/no keyboard shown when a topic is exhausted.
func buildRetryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnYes)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnNo)),
	)
	kb.ResizeKeyboard = true
	return kb
}
