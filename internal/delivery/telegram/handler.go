package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/service"
)

type Options struct {
	UpdateTimeout int // long polling timeout in seconds
	Workers       int // number of ordered dispatch workers
}

type Handler struct {
	bot         Bot
	logger      *zap.Logger
	quizService QuizService
	opts        Options
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	opts Options,
) *Handler {
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = 60
	}
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		opts:        opts,
	}
}

// Commands returns the bot commands shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Выбрать тему",
		},
		{
			Command:     "profile",
			Description: "Посмотреть счёт",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int("workers", h.opts.Workers))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.opts.UpdateTimeout

	updates := h.bot.GetUpdatesChan(u)

	d := newDispatcher(h.opts.Workers, h.handleUpdate)
	d.start(ctx)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			d.dispatch(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message")
		return
	}

	h.logger.Debug("update received",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart(from.ID))(ctx, chatID)

		case "profile", "score":
			_ = h.withErrorHandling(h.handleProfile(from.ID, from.FirstName))(ctx, chatID)

		case "help":
			h.send(newPlainMessage(chatID, msgHelp))

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleText(from.ID, from.FirstName, update.Message.Text))(ctx, chatID)
}

// handleStart greets the user and shows the topic menu.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		reply, err := h.quizService.ShowMenu(ctx, userID)
		if err != nil {
			return err
		}

		if reply.Status == service.StatusNotReady {
			h.sendReply(chatID, reply)
			return nil
		}

		msg := newPlainMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildCategoryKeyboard()
		h.send(msg)

		msg = newPlainMessage(chatID, msgChooseTopic)
		msg.ReplyMarkup = buildCategoryKeyboard()
		h.send(msg)

		return nil
	}
}

// handleProfile shows the score summary.
func (h *Handler) handleProfile(userID int64, firstName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		reply, err := h.quizService.GetScoreSummary(ctx, userID)
		if err != nil {
			return err
		}

		if reply.Status == service.StatusScore {
			msg := newHTMLMessage(chatID, formatScore(firstName, reply.Scores, reply.Totals))
			msg.ReplyMarkup = buildCategoryKeyboard()
			h.send(msg)
			return nil
		}

		h.sendReply(chatID, reply)
		return nil
	}
}

// handleText routes button presses and free-text answers. Category labels
// win over answer text; everything unrecognized is submitted as an answer.
func (h *Handler) handleText(userID int64, firstName, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if text == btnScore {
			return h.handleProfile(userID, firstName)(ctx, chatID)
		}

		var (
			reply *service.Reply
			err   error
		)

		if text == btnBack {
			reply, err = h.quizService.ShowMenu(ctx, userID)
		} else if category, ok := entities.CategoryByLabel(text); ok {
			reply, err = h.quizService.StartCategory(ctx, userID, category)
		} else {
			reply, err = h.quizService.SubmitAnswer(ctx, userID, text)
		}
		if err != nil {
			return err
		}

		h.sendReply(chatID, reply)
		return nil
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newPlainMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
