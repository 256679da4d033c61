// internal/infra/telegram/duty_handlers.go
package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"duty_roster_bot/internal/app"
	"duty_roster_bot/internal/domain/duty"
	"duty_roster_bot/internal/domain/roster"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterDutyHandlers wires the /start keyboard, /status query, name
// selection, and the duty confirmation callback to the duty service.
func RegisterDutyHandlers(
	b *telebot.Bot,
	dutyService *app.DutyService,
	r *roster.Roster,
	baseLogger *logrus.Entry,
) {
	handlerLogger := baseLogger.WithField("handler_group", "duty")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")
		return c.Send(startText, namesKeyboard(r))
	})

	b.Handle("/status", func(c telebot.Context) error {
		user := duty.UserID(c.Sender().ID)
		logCtx := handlerLogger.WithField("command", "/status").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /status command")

		now := time.Now()
		var reply strings.Builder
		if holder, ok := dutyService.QueryDutyStatus(now); ok {
			reply.WriteString(fmt.Sprintf(dutyTodayFmt, holder))
		} else {
			reply.WriteString(noDutyTodayText)
		}

		if p, ok := dutyService.Selection(user); ok {
			next, err := dutyService.QueryNextOccurrence(p, now)
			if err != nil {
				logCtx.WithError(err).Error("Failed to compute next occurrence for /status")
				return c.Send(internalErrorText)
			}
			reply.WriteString("\n")
			reply.WriteString(fmt.Sprintf(yourNextDutyFmt, p, roster.FormatDate(next)))
		} else {
			reply.WriteString("\n")
			reply.WriteString(notSelectedText)
		}
		return c.Send(reply.String())
	})

	// Any plain text message is treated as a name selection attempt.
	b.Handle(telebot.OnText, func(c telebot.Context) error {
		user := duty.UserID(c.Sender().ID)
		name := strings.TrimSpace(c.Text())
		logCtx := handlerLogger.WithFields(logrus.Fields{
			"sender_id": c.Sender().ID,
			"text":      name,
		})

		next, err := dutyService.OnParticipantSelected(user, name)
		if err != nil {
			if errors.Is(err, roster.ErrUnknownParticipant) {
				logCtx.Info("Unknown participant name, re-prompting")
				return c.Send(unknownNameText, namesKeyboard(r))
			}
			logCtx.WithError(err).Error("Failed to process name selection")
			return c.Send(internalErrorText)
		}

		return c.Send(fmt.Sprintf(selectedFmt, name, roster.FormatDate(next)), removeKeyboard())
	})

	// The confirm button embedded in reminder messages.
	confirmMarkup := &telebot.ReplyMarkup{}
	btnConfirm := confirmMarkup.Data("", app.ConfirmDutyUnique)
	b.Handle(&btnConfirm, func(c telebot.Context) error {
		user := duty.UserID(c.Sender().ID)
		date := dutyService.OnAcknowledged(user)
		handlerLogger.WithFields(logrus.Fields{
			"sender_id": c.Sender().ID,
			"date":      date.Format("2006-01-02"),
		}).Info("Duty confirmed via callback")

		if err := c.Edit(confirmedText); err != nil {
			// The message may be too old to edit; the acknowledgement is
			// already recorded, so just answer the callback.
			handlerLogger.WithError(err).Warn("Could not edit reminder message after confirmation")
		}
		return c.Respond()
	})
}
