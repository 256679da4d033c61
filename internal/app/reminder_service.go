// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"duty_roster_bot/internal/domain/duty"
	"duty_roster_bot/internal/domain/roster"
	domainTelegram "duty_roster_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3" // For telebot.ReplyMarkup and telebot.SendOptions
)

// ConfirmDutyUnique is the callback unique carried by the inline confirm
// button. The transport layer registers its acknowledgement handler under
// the same unique.
const ConfirmDutyUnique = "confirm_duty"

// ReminderService defines the operation the scheduler drives on each trigger.
type ReminderService interface {
	// ProcessDueReminders evaluates one trigger: resolve today's duty holder
	// and notify every follower who has not confirmed today.
	ProcessDueReminders(ctx context.Context, now time.Time) error
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	roster         *roster.Roster
	selections     duty.SelectionRepository
	confirmations  duty.ConfirmationRepository
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
}

func NewReminderService(
	r *roster.Roster,
	selections duty.SelectionRepository,
	confirmations duty.ConfirmationRepository,
	tc domainTelegram.Client,
	logger *logrus.Entry,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		roster:         r,
		selections:     selections,
		confirmations:  confirmations,
		telegramClient: tc,
		logger:         logger,
	}
}

// ProcessDueReminders sends the reminder batch for the trigger at now.
// A failed delivery to one user is logged and skipped; it never aborts the
// rest of the batch.
func (s *ReminderServiceImpl) ProcessDueReminders(ctx context.Context, now time.Time) error {
	today := roster.Midnight(now)

	holder, ok := s.roster.DutyHolder(today)
	if !ok {
		s.logger.WithField("date", today.Format("2006-01-02")).Debug("No duty holder today, nothing to send")
		return nil
	}

	followers := s.selections.ListByParticipant(holder)
	if len(followers) == 0 {
		s.logger.WithField("participant", string(holder)).Debug("Duty holder has no registered followers")
		return nil
	}

	messageText := fmt.Sprintf("Напоминание: %s, сегодня (%s) ты дежуришь в ванной! 🛁", holder, roster.FormatDate(today))
	markup := confirmKeyboard()

	sent := 0
	for _, user := range followers {
		if s.confirmations.HasConfirmed(user, today) {
			continue
		}

		err := s.telegramClient.SendMessage(ctx, int64(user), messageText, &telebot.SendOptions{ReplyMarkup: markup})
		if err != nil {
			s.logger.WithError(err).WithField("user_id", user).Error("Failed to send duty reminder")
			continue
		}
		sent++
	}

	s.logger.WithFields(logrus.Fields{
		"participant": string(holder),
		"date":        today.Format("2006-01-02"),
		"sent":        sent,
	}).Info("Duty reminder batch complete")
	return nil
}

// confirmKeyboard builds the inline "I'm on it" button embedded in reminders.
func confirmKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	btnConfirm := markup.Data("Иду дежурить! ✅", ConfirmDutyUnique)
	markup.Inline(markup.Row(btnConfirm))
	return markup
}
