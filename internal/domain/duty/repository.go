package duty

import (
	"time"

	"duty_roster_bot/internal/domain/roster"
)

// UserID identifies a chat user at the transport boundary (Telegram chat ID).
type UserID int64

// SelectionRepository stores which roster participant each user follows.
// Implementations must be safe for concurrent use: the inbound event path
// writes while the scheduler path reads.
type SelectionRepository interface {
	// Select records (or overwrites) the participant the user follows.
	Select(user UserID, p roster.Participant)
	// Get returns the user's selected participant, if any.
	Get(user UserID) (roster.Participant, bool)
	// ListByParticipant returns all users following the given participant.
	// Order is unspecified.
	ListByParticipant(p roster.Participant) []UserID
}

// ConfirmationRepository stores the calendar date each user last acknowledged.
// A reminder for a date is suppressed exactly when that date was confirmed;
// there is no reset step, correctness relies on date inequality on later days.
type ConfirmationRepository interface {
	// Confirm records date as acknowledged for the user. Confirming the same
	// date twice is a no-op beyond the overwrite.
	Confirm(user UserID, date time.Time)
	// HasConfirmed reports whether the user acknowledged the given date.
	HasConfirmed(user UserID, date time.Time) bool
}
