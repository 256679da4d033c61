package memory

import (
	"sync"
	"time"

	"duty_roster_bot/internal/domain/duty"
	"duty_roster_bot/internal/domain/roster"
)

// ConfirmationStore is an in-memory duty.ConfirmationRepository. It keeps
// only the most recently acknowledged date per user; suppression on later
// days falls out of the date comparison, so nothing is ever cleared.
type ConfirmationStore struct {
	mu     sync.RWMutex
	byUser map[duty.UserID]time.Time
}

func NewConfirmationStore() *ConfirmationStore {
	return &ConfirmationStore{byUser: make(map[duty.UserID]time.Time)}
}

// Confirm records date (normalized to midnight) as acknowledged for the user.
func (s *ConfirmationStore) Confirm(user duty.UserID, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[user] = roster.Midnight(date)
}

// HasConfirmed reports whether the user's last acknowledged date is the
// given one.
func (s *ConfirmationStore) HasConfirmed(user duty.UserID, date time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	last, ok := s.byUser[user]
	return ok && last.Equal(roster.Midnight(date))
}
