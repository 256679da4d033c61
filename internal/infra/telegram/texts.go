package telegram

import (
	"duty_roster_bot/internal/domain/roster"

	"gopkg.in/telebot.v3"
)

// User-facing texts.
const (
	startText = "Привет! 👋 Этот бот поможет тебе следить за графиком дежурств в ванной. " +
		"Выбери своё имя:"
	selectedFmt       = "Вы выбрали расписание для %s. Ближайшее дежурство: %s."
	confirmedText     = "✅ Дежурство подтверждено!"
	unknownNameText   = "Я не знаю такого имени. Пожалуйста, выбери своё имя кнопкой ниже:"
	internalErrorText = "Произошла ошибка. Пожалуйста, попробуйте позже."
	noDutyTodayText   = "Сегодня никто не дежурит."
	dutyTodayFmt      = "Сегодня дежурит: %s."
	yourNextDutyFmt   = "Твоё ближайшее дежурство (%s): %s."
	notSelectedText   = "Ты ещё не выбрал(а) своё имя — отправь /start."
)

// namesKeyboard builds the reply keyboard with one button per roster name.
func namesKeyboard(r *roster.Roster) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	rows := make([]telebot.Row, 0, len(r.Participants()))
	for _, p := range r.Participants() {
		rows = append(rows, markup.Row(markup.Text(string(p))))
	}
	markup.Reply(rows...)
	return markup
}

// removeKeyboard hides the reply keyboard after a successful selection.
func removeKeyboard() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{RemoveKeyboard: true}
}
