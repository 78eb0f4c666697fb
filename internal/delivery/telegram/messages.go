// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

// Button labels. Reply keyboards send the label back as message text.
const (
	btnBack  = "Назад ↩️"
	btnScore = "📊 Мой счёт"
	btnYes   = "Да"
	btnNo    = "Нет"
)

const (
	msgWelcome          = "Привет! Я помогу тебе подготовиться к собеседованию. Используй команды ниже для взаимодействия с ботом:\n\n/start — выбрать тему\n/profile — посмотреть счёт\n/help — помощь"
	msgChooseTopic      = "С чего начнем? Выбирай тему👇"
	msgChooseCategory   = "Выберите категорию:"
	msgWrongAnswer      = "Неправильно. Попробуйте еще раз."
	msgNoActiveQuestion = "Кажется, я забыл вопрос. Давай начнем заново."
	msgNotReady         = "Вопросы ещё загружаются. Попробуйте через минуту."
	msgInternalError    = "Произошла ошибка при обработке ответа на вопрос. Попробуйте еще раз позже."
	msgUnknownCommand   = "Неизвестная команда. Список доступных команд:\n\n/start — выбрать тему\n/profile — посмотреть счёт\n/help — помощь"
	msgHelp             = "Выберите тему на клавиатуре и отвечайте на вопросы, нажимая на варианты ответа.\n\n" +
		"За каждый правильный ответ начисляется очко в счёт темы.\n" +
		"Когда вопросы в теме закончатся, я предложу пройти её заново.\n\n" +
		"/profile — ваш счёт по темам"
)

const progressBarLength = 10

func msgCorrect(explanation string) string {
	if explanation == "" {
		return "Верно!"
	}
	return "Верно!\n" + explanation
}

func msgRetryPrompt(c entities.Category) string {
	return fmt.Sprintf("Вы ответили на все вопросы по %s! Желаете повторить?", c.Label())
}

func msgCategoryUnavailable(c entities.Category) string {
	return fmt.Sprintf("Не удалось загрузить вопросы для категории %s. Попробуйте другую тему.", c.Label())
}

// formatScore renders the score summary as HTML.
func formatScore(firstName string, scores, totals map[entities.Category]int) string {
	var sb strings.Builder

	sb.WriteString("<b>📊 Ваш счёт</b>\n\n")

	sum := 0
	for _, c := range entities.Categories() {
		correct := scores[c]
		sum += correct

		total, ok := totals[c]
		if !ok || total < 0 {
			sb.WriteString(fmt.Sprintf("<b>%s:</b> %d (тема недоступна)\n", c.Label(), correct))
			continue
		}

		sb.WriteString(fmt.Sprintf("<b>%s:</b> %d из %d\n%s\n",
			c.Label(), correct, total, buildProgressBar(correct, total, progressBarLength)))
	}

	sb.WriteString(fmt.Sprintf("\n✅ <b>Всего правильных ответов:</b> %d", sum))

	if firstName != "" {
		sb.WriteString(fmt.Sprintf("\n\nУдачи, %s!", html.EscapeString(firstName)))
	}

	return sb.String()
}
