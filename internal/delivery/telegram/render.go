package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/interview-quiz-bot/internal/service"
)

// sendReply renders a quiz reply and any follow-up it carries.
func (h *Handler) sendReply(chatID int64, reply *service.Reply) {
	for r := reply; r != nil; r = r.Next {
		h.send(buildReplyMessage(chatID, r))
	}
}

func buildReplyMessage(chatID int64, reply *service.Reply) tgbotapi.MessageConfig {
	switch reply.Status {
	case service.StatusQuestion:
		msg := newPlainMessage(chatID, reply.Question.Question)
		msg.ReplyMarkup = buildQuestionKeyboard(reply.Question)
		return msg

	case service.StatusRetryPrompt:
		msg := newPlainMessage(chatID, msgRetryPrompt(reply.Category))
		msg.ReplyMarkup = buildRetryKeyboard()
		return msg

	case service.StatusCorrect:
		return newPlainMessage(chatID, msgCorrect(reply.Explanation))

	case service.StatusWrong:
		return newPlainMessage(chatID, msgWrongAnswer)

	case service.StatusScore:
		msg := newHTMLMessage(chatID, formatScore("", reply.Scores, reply.Totals))
		msg.ReplyMarkup = buildCategoryKeyboard()
		return msg

	case service.StatusCategoryUnavailable:
		msg := newPlainMessage(chatID, msgCategoryUnavailable(reply.Category))
		msg.ReplyMarkup = buildCategoryKeyboard()
		return msg

	case service.StatusNoActiveQuestion:
		msg := newPlainMessage(chatID, msgNoActiveQuestion)
		msg.ReplyMarkup = buildCategoryKeyboard()
		return msg

	case service.StatusNotReady:
		return newPlainMessage(chatID, msgNotReady)

	default:
		msg := newPlainMessage(chatID, msgChooseCategory)
		msg.ReplyMarkup = buildCategoryKeyboard()
		return msg
	}
}
