package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/service"
)

// Bot is the subset of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	StartCategory(ctx context.Context, userID int64, category entities.Category) (*service.Reply, error)
	SubmitAnswer(ctx context.Context, userID int64, text string) (*service.Reply, error)
	ShowMenu(ctx context.Context, userID int64) (*service.Reply, error)
	GetScoreSummary(ctx context.Context, userID int64) (*service.Reply, error)
}
