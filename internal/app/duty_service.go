package app

import (
	"fmt"
	"time"

	"duty_roster_bot/internal/domain/duty"
	"duty_roster_bot/internal/domain/roster"

	"github.com/sirupsen/logrus"
)

// DutyService handles inbound user events: picking a roster name to follow
// and acknowledging today's duty. It shares the selection and confirmation
// stores with the reminder batch; the stores carry their own locking.
type DutyService struct {
	roster        *roster.Roster
	selections    duty.SelectionRepository
	confirmations duty.ConfirmationRepository
	logger        *logrus.Entry
	now           func() time.Time
}

// NewDutyService builds the service. A nil now falls back to time.Now;
// tests inject a fixed clock.
func NewDutyService(
	r *roster.Roster,
	selections duty.SelectionRepository,
	confirmations duty.ConfirmationRepository,
	logger *logrus.Entry,
	now func() time.Time,
) *DutyService {
	if now == nil {
		now = time.Now
	}
	return &DutyService{
		roster:        r,
		selections:    selections,
		confirmations: confirmations,
		logger:        logger,
		now:           now,
	}
}

// OnParticipantSelected validates the chosen name against the roster,
// records the selection and returns the user's next duty date. Unknown
// names leave state untouched and return roster.ErrUnknownParticipant.
func (s *DutyService) OnParticipantSelected(user duty.UserID, name string) (time.Time, error) {
	p, ok := s.roster.Find(name)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", roster.ErrUnknownParticipant, name)
	}

	s.selections.Select(user, p)

	next, err := s.roster.NextOccurrence(p, s.now())
	if err != nil {
		return time.Time{}, fmt.Errorf("compute next duty for %q: %w", name, err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     user,
		"participant": string(p),
		"next_duty":   next.Format("2006-01-02"),
	}).Info("Participant selected")
	return next, nil
}

// OnAcknowledged records today's date as confirmed for the user and returns
// it. Acknowledging twice on the same day is a no-op beyond the overwrite.
func (s *DutyService) OnAcknowledged(user duty.UserID) time.Time {
	today := roster.Midnight(s.now())
	s.confirmations.Confirm(user, today)
	s.logger.WithFields(logrus.Fields{
		"user_id": user,
		"date":    today.Format("2006-01-02"),
	}).Info("Duty confirmed")
	return today
}

// Selection returns the participant the user follows, if any.
func (s *DutyService) Selection(user duty.UserID) (roster.Participant, bool) {
	return s.selections.Get(user)
}

// QueryDutyStatus returns the duty holder for the given date, if any.
func (s *DutyService) QueryDutyStatus(date time.Time) (roster.Participant, bool) {
	return s.roster.DutyHolder(date)
}

// QueryNextOccurrence returns the participant's earliest duty date on or
// after from.
func (s *DutyService) QueryNextOccurrence(p roster.Participant, from time.Time) (time.Time, error) {
	return s.roster.NextOccurrence(p, from)
}
